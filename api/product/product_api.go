package product

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory.GO/api"
	entity "inventory.GO/model/entity"
	productRepo "inventory.GO/model/repository/product"
	searchService "inventory.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type productInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SupplierID  uint            `json:"supplier_id"`
}

func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productRepo.NewProductRepository(db)
	g := apiGroup.Group("/products")

	// GET /api/products — paginated, filterable by name, price, supplier_name
	g.GET("", func(c echo.Context) error {
		page := queryInt(c, "page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := queryInt(c, "page_size", defaultPageSize)
		if pageSize < 1 {
			pageSize = defaultPageSize
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		filter := productRepo.ListFilter{
			Name:         c.QueryParam("name"),
			Price:        c.QueryParam("price"),
			SupplierName: c.QueryParam("supplier_name"),
		}
		products, total, err := repo.List(filter, page, pageSize)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"count":     total,
			"page":      page,
			"page_size": pageSize,
			"results":   products,
		})
	})

	g.POST("", func(c echo.Context) error {
		var in productInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"name": "This field is required."})
		}
		var supplier entity.Supplier
		if err := db.First(&supplier, "supplier_id = ?", in.SupplierID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"supplier_id": "Invalid supplier."})
		}
		p := entity.Product{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			SupplierID:  in.SupplierID,
		}
		if err := db.Create(&p).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		p.Supplier = &supplier
		indexAsync(c, &p)
		return c.JSON(http.StatusCreated, p)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		p, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		p, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		var in productInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name != "" {
			p.Name = in.Name
		}
		p.Description = in.Description
		p.Price = in.Price
		if in.SupplierID != 0 && in.SupplierID != p.SupplierID {
			var supplier entity.Supplier
			if err := db.First(&supplier, "supplier_id = ?", in.SupplierID).Error; err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"supplier_id": "Invalid supplier."})
			}
			p.SupplierID = in.SupplierID
			p.Supplier = &supplier
		}
		if err := db.Omit("Supplier").Save(p).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		indexAsync(c, p)
		return c.JSON(http.StatusOK, p)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		p, err := repo.GetByID(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&entity.Inventory{}).Error; err != nil {
				return err
			}
			return tx.Delete(&entity.Product{}, "product_id = ?", id).Error
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}

// indexAsync pushes the product to Elasticsearch in the background. Indexing
// failures are invisible to the caller. Detached from the request context so
// the write outlives the response.
func indexAsync(_ echo.Context, p *entity.Product) {
	svc := searchService.GetSearchService()
	cp := *p
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svc.IndexProduct(ctx, &cp)
	}()
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
