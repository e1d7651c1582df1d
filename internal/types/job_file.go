package types

import (
	"time"

	"github.com/google/uuid"
)

// JobFile belongs to exactly one Job. Uploaded alongside job creation when a
// file is supplied; its only business use beyond download is the
// has-attachments column of the monthly report.
type JobFile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;index;column:job_id" json:"job_id"`
	Job          *Job      `gorm:"constraint:OnDelete:CASCADE;foreignKey:JobID;references:ID" json:"job,omitempty"`
	OriginalName string    `gorm:"not null;column:original_name" json:"original_name"`
	SizeBytes    int64     `gorm:"column:size_bytes" json:"size_bytes"`
	StorageKey   string    `gorm:"not null;column:storage_key" json:"storage_key"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (JobFile) TableName() string { return "job_file" }
