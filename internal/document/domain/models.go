package domain

import "time"

// Document is the metadata row for an uploaded job file. The object itself
// lives in the documents bucket under FilePath.
type Document struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	JobType        string    `gorm:"not null;index:idx_documents_job" json:"job_type"`
	DropCableJobID *string   `gorm:"type:uuid;index:idx_documents_job" json:"drop_cable_job_id"`
	LinkBuildJobID *string   `gorm:"type:uuid;index" json:"link_build_job_id"`
	ClientID       string    `gorm:"type:uuid;not null" json:"client_id"`
	Category       *string   `json:"category"`
	FilePath       string    `gorm:"not null;index" json:"file_path"`
	FileName       string    `gorm:"not null" json:"file_name"`
	CircuitNumber  *string   `json:"circuit_number"`
	UploadedBy     *string   `json:"uploaded_by"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Document) TableName() string { return "documents" }
