package supplier

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"inventory.GO/api"
	"inventory.GO/config"
	entity "inventory.GO/model/entity"
	supplierRepo "inventory.GO/model/repository/supplier"
	reportService "inventory.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterSupplierRoutes)
}

const duplicateNameMsg = "A supplier with this name already exists (case-insensitive)."

type supplierInput struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

func RegisterSupplierRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := supplierRepo.NewSupplierRepository(db)
	g := apiGroup.Group("/suppliers")

	g.GET("", func(c echo.Context) error {
		var suppliers []entity.Supplier
		if err := db.Order("name").Find(&suppliers).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, suppliers)
	})

	g.POST("", func(c echo.Context) error {
		var in supplierInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"name": "This field is required."})
		}
		taken, err := repo.NameTaken(in.Name, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if taken {
			return c.JSON(http.StatusBadRequest, echo.Map{"name": duplicateNameMsg})
		}
		s := entity.Supplier{Name: in.Name, ContactInfo: in.ContactInfo}
		if err := db.Create(&s).Error; err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"name": duplicateNameMsg})
		}
		return c.JSON(http.StatusCreated, s)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		s, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if s == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}
		return c.JSON(http.StatusOK, s)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		s, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if s == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}
		var in supplierInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name != "" && in.Name != s.Name {
			taken, err := repo.NameTaken(in.Name, s.SupplierID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			if taken {
				return c.JSON(http.StatusBadRequest, echo.Map{"name": duplicateNameMsg})
			}
			s.Name = in.Name
		}
		s.ContactInfo = in.ContactInfo
		if err := db.Save(s).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateProductsCache(s.SupplierID)
		return c.JSON(http.StatusOK, s)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		s, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if s == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}
		if err := repo.DeleteCascade(id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateProductsCache(id)
		return c.NoContent(http.StatusNoContent)
	})

	// GET /api/suppliers/:id/products — products with quantities plus rollups.
	// Supplier writes invalidate the redis entry; product, inventory and CSV
	// import writes do not, so totals can lag up to the 30s TTL.
	g.GET("/:id/products", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}

		cacheKey := productsCacheKey(id)
		if config.RedisClient != nil {
			if cached, err := config.RedisClient.Get(config.RedisCtx(), cacheKey).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			}
		}

		s, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if s == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}

		totalProducts, err := repo.CountProducts(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		totalValue, err := repo.TotalInventoryValue(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		withQty, err := repo.ProductsWithQuantities(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		products := make([]echo.Map, 0, len(withQty))
		for _, pq := range withQty {
			products = append(products, echo.Map{
				"product":  pq.Product,
				"quantity": pq.Quantity,
			})
		}
		resp := echo.Map{
			"supplier_name":         s.Name,
			"total_products":        totalProducts,
			"total_inventory_value": reportService.Money(totalValue),
			"products":              products,
		}

		if config.RedisClient != nil {
			if body, err := json.Marshal(resp); err == nil {
				config.RedisClient.Set(config.RedisCtx(), cacheKey, body, 30*time.Second)
			}
		}
		return c.JSON(http.StatusOK, resp)
	})
}

func productsCacheKey(id uint) string {
	return "supplier_products:" + strconv.FormatUint(uint64(id), 10)
}

func invalidateProductsCache(id uint) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.RedisCtx(), productsCacheKey(id))
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
