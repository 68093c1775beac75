package inventory

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"inventory.GO/api"
	entity "inventory.GO/model/entity"
	inventoryRepo "inventory.GO/model/repository/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

type inventoryInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := inventoryRepo.NewInventoryRepository(db)
	g := apiGroup.Group("/inventory")

	g.GET("", func(c echo.Context) error {
		rows, err := repo.GetAllWithProduct()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, rows)
	})

	g.POST("", func(c echo.Context) error {
		var in inventoryInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"quantity": "Ensure this value is greater than or equal to 0."})
		}
		var product entity.Product
		if err := db.First(&product, "product_id = ?", in.ProductID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"product_id": "Invalid product."})
		}
		inv := entity.Inventory{ProductID: in.ProductID, Quantity: in.Quantity}
		if err := db.Create(&inv).Error; err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"product_id": "Inventory for this product already exists."})
		}
		inv.Product = &product
		return c.JSON(http.StatusCreated, inv)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		inv, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if inv == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory not found"})
		}
		return c.JSON(http.StatusOK, inv)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		inv, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if inv == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory not found"})
		}
		var in inventoryInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"quantity": "Ensure this value is greater than or equal to 0."})
		}
		inv.Quantity = in.Quantity
		if err := db.Omit("Product").Save(inv).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, inv)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		inv, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if inv == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory not found"})
		}
		if err := db.Delete(&entity.Inventory{}, "inventory_id = ?", id).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
