package search

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"inventory.GO/api"
	entity "inventory.GO/model/entity"
	searchService "inventory.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterSearchRoutes)
}

func RegisterSearchRoutes(apiGroup *echo.Group, db *gorm.DB) {
	// GET /api/products/search?q=...&size=20 — Elasticsearch-backed lookup
	apiGroup.GET("/products/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
		}
		size := 20
		if v := c.QueryParam("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				size = n
			}
		}

		svc := searchService.GetSearchService()
		ids, err := svc.Search(c.Request().Context(), q, size)
		if err != nil {
			if err.Error() == "elasticsearch not configured" {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search not configured"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		results := []entity.Product{}
		if len(ids) > 0 {
			if err := db.Preload("Supplier").Where("product_id IN ?", ids).
				Find(&results).Error; err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"query":   q,
			"count":   len(results),
			"results": results,
		})
	})
}
