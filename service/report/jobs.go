package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	"inventory.GO/core/jobs"
	entity "inventory.GO/model/entity"
)

// Job names for the background pool.
const (
	JobInventoryReport    = "inventory_report"
	JobInventoryReportPDF = "inventory_report_pdf"
)

type pdfJobArgs struct {
	ReportJobID string `mapstructure:"report_job_id"`
}

// RegisterJobs binds the report computation and PDF rendering handlers to the
// pool. The computation persists its document on a report_job row; the PDF
// handler loads that row by report job id instead of recomputing.
func RegisterJobs(pool *jobs.Pool, db *gorm.DB, reportsDir string) {
	pool.RegisterHandler(JobInventoryReport, func(jobID string, _ map[string]interface{}) (interface{}, error) {
		rep, err := Build(db)
		if err != nil {
			saveJobRow(db, jobID, entity.ReportJobKindReport, string(jobs.StateFailed), nil, "", err.Error())
			return nil, err
		}
		doc, err := json.Marshal(rep)
		if err != nil {
			return nil, err
		}
		if err := saveJobRow(db, jobID, entity.ReportJobKindReport, string(jobs.StateDone), doc, "", ""); err != nil {
			return nil, err
		}
		return rep, nil
	})

	pool.RegisterHandler(JobInventoryReportPDF, func(jobID string, payload map[string]interface{}) (interface{}, error) {
		var args pdfJobArgs
		if err := mapstructure.Decode(payload, &args); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		if args.ReportJobID == "" {
			return nil, errors.New("report_job_id is required")
		}

		var row entity.ReportJob
		if err := db.First(&row, "job_id = ?", args.ReportJobID).Error; err != nil {
			return nil, fmt.Errorf("load report job %s: %w", args.ReportJobID, err)
		}
		var rep Report
		if err := json.Unmarshal(row.Document, &rep); err != nil {
			return nil, fmt.Errorf("decode report document: %w", err)
		}

		relPath, err := RenderPDF(&rep, reportsDir, args.ReportJobID)
		if err != nil {
			saveJobRow(db, jobID, entity.ReportJobKindPDF, string(jobs.StateFailed), nil, "", err.Error())
			return nil, err
		}
		if err := saveJobRow(db, jobID, entity.ReportJobKindPDF, string(jobs.StateDone), nil, relPath, ""); err != nil {
			return nil, err
		}
		return relPath, nil
	})
}

func saveJobRow(db *gorm.DB, jobID, kind, state string, doc []byte, artifact, errMsg string) error {
	return db.Save(&entity.ReportJob{
		JobID:        jobID,
		Kind:         kind,
		State:        state,
		Document:     doc,
		ArtifactPath: artifact,
		Error:        errMsg,
	}).Error
}
