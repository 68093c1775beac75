package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ReportJob is the persisted record of a background report run. The report
// computation stores its document here as JSON; the PDF job reads it back by
// report job id instead of recomputing.
type ReportJob struct {
	JobID        string         `gorm:"column:job_id;type:varchar(36);primaryKey" json:"job_id"`
	Kind         string         `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	State        string         `gorm:"column:state;type:varchar(16);not null" json:"state"`
	Document     datatypes.JSON `gorm:"column:document" json:"document,omitempty"`
	ArtifactPath string         `gorm:"column:artifact_path;type:varchar(255)" json:"artifact_path,omitempty"`
	Error        string         `gorm:"column:error;type:text" json:"error,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (ReportJob) TableName() string {
	return "report_job"
}

const (
	ReportJobKindReport = "report"
	ReportJobKindPDF    = "pdf"
)
