package report

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"inventory.GO/api"
	"inventory.GO/config"
	"inventory.GO/core/jobs"
	reportService "inventory.GO/service/report"
)

func init() {
	api.RegisterModule(func(g *echo.Group, db *gorm.DB) {
		config.LoadAppConfig()
		pool := jobs.Default()
		reportService.RegisterJobs(pool, db, config.ReportsDir())
		RegisterReportRoutes(g, db, pool, Options{
			ReportsDir: config.ReportsDir(),
			BaseURL:    config.AppConfig.BaseURL,
			Timeout:    config.AppConfig.ReportTimeout,
		})
	})
}

// Options configures the orchestration endpoint.
type Options struct {
	ReportsDir string
	BaseURL    string
	Timeout    time.Duration
}

// RegisterReportRoutes mounts GET /inventory-report: submit the report job,
// wait for it, submit the PDF job keyed by the report job id, wait, then
// resolve the artifact on disk into a download link. Waiting is bounded by
// Options.Timeout; each failure is surfaced once, no retries.
func RegisterReportRoutes(apiGroup *echo.Group, _ *gorm.DB, pool *jobs.Pool, opts Options) {
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}

	apiGroup.GET("/inventory-report", func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = c.JSON(http.StatusInternalServerError, echo.Map{
					"status": "Failure",
					"error":  fmt.Sprintf("An error occurred: %v", r),
				})
			}
		}()

		log.Println("Triggering inventory report job.")
		reportID, submitErr := pool.Submit(reportService.JobInventoryReport, nil)
		if submitErr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "Failure",
				"error":  fmt.Sprintf("An error occurred: %v", submitErr),
			})
		}
		log.Printf("Report job submitted with ID: %s", reportID)

		ctx, cancel := context.WithTimeout(c.Request().Context(), opts.Timeout)
		defer cancel()

		state, waitErr := pool.Wait(ctx, reportID)
		if waitErr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "Failure",
				"message": "Report generation timed out.",
			})
		}
		if state != jobs.StateDone {
			log.Printf("Report job %s failed with state: %s", reportID, state)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "Failure",
				"message": "Report generation failed.",
			})
		}

		log.Printf("Report job %s succeeded. Triggering PDF job.", reportID)
		pdfID, submitErr := pool.Submit(reportService.JobInventoryReportPDF, map[string]interface{}{
			"report_job_id": reportID,
		})
		if submitErr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "Failure",
				"error":  fmt.Sprintf("An error occurred: %v", submitErr),
			})
		}

		state, waitErr = pool.Wait(ctx, pdfID)
		if waitErr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "Failure",
				"message": "PDF generation timed out.",
			})
		}
		if state != jobs.StateDone {
			log.Printf("PDF job %s failed with state: %s", pdfID, state)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "Failure",
				"message": "PDF generation failed.",
			})
		}

		// Resolve the artifact: file name ends with the first 8 chars of the
		// report job id plus the extension.
		suffix := reportService.ShortJobID(reportID) + ".pdf"
		entries, readErr := os.ReadDir(opts.ReportsDir)
		if readErr != nil {
			log.Printf("Reports directory %s is not readable: %v", opts.ReportsDir, readErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":  "Failure",
				"message": "Reports directory not found.",
			})
		}
		var fileName string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
				fileName = e.Name()
				break
			}
		}
		if fileName == "" {
			log.Printf("No PDF with suffix %s under %s", suffix, opts.ReportsDir)
			return c.JSON(http.StatusNotFound, echo.Map{
				"status":  "Failure",
				"message": "PDF file not found.",
			})
		}

		link := opts.BaseURL + "/media/" + reportService.ReportsSubdir + "/" + fileName
		log.Printf("Found PDF file: %s. Returning download link.", fileName)
		return c.JSON(http.StatusOK, echo.Map{
			"status":            "Success",
			"pdf_download_link": link,
		})
	})
}
