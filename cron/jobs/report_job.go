package jobs

import (
	"log"

	"github.com/google/uuid"

	"inventory.GO/config"
	"inventory.GO/cron"
	reportService "inventory.GO/service/report"
)

func init() {
	cron.Register("inventoryreportjob", "0 2 * * *", InventoryReportJob)
}

// InventoryReportJob builds the inventory report and renders it to the
// reports directory under a fresh job id. Runs nightly; also runnable
// one-off via `cron:start -j inventoryreportjob` or `report:generate`.
func InventoryReportJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("inventoryreportjob: database connection failed: %v", err)
		return
	}
	rep, err := reportService.Build(db)
	if err != nil {
		log.Printf("inventoryreportjob: build failed: %v", err)
		return
	}
	relPath, err := reportService.RenderPDF(rep, config.ReportsDir(), uuid.NewString())
	if err != nil {
		log.Printf("inventoryreportjob: render failed: %v", err)
		return
	}
	log.Printf("inventoryreportjob: report written to %s", relPath)
}
