package importcsv

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"inventory.GO/api"
	"inventory.GO/service/importer"
)

func init() {
	api.RegisterModule(RegisterImportRoutes)
}

func RegisterImportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	// POST /api/products/upload-csv — bulk product/inventory import
	apiGroup.POST("/products/upload-csv", func(c echo.Context) error {
		start := time.Now()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "No file provided. Please upload a CSV file.",
			})
		}
		f, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to process file: " + err.Error(),
			})
		}
		defer f.Close()

		res, err := importer.ImportProducts(db, f)
		var missing *importer.MissingColumnsError
		if errors.As(err, &missing) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": missing.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to process file: " + err.Error(),
			})
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, res)
	})
}
