package domain

import (
	"time"

	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Items is the JSON column holding the requested stock lines.
type Items = datatypes.JSONSlice[inventorydomain.UsageItem]

// Request is a technician's ask for stock against a job.
type Request struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	JobID           string     `gorm:"type:uuid;not null;index" json:"job_id"`
	JobType         string     `gorm:"not null" json:"job_type"`
	TechnicianID    string     `gorm:"type:uuid;not null;index" json:"technician_id"`
	Items           Items      `gorm:"not null" json:"items"`
	Status          Status     `gorm:"not null;index" json:"status"`
	RequestedAt     time.Time  `gorm:"not null" json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *string    `gorm:"type:uuid" json:"reviewed_by"`
	RejectionReason *string    `json:"rejection_reason"`
}

func (Request) TableName() string { return "inventory_requests" }

// Detail is a request joined with its technician and job.
type Detail struct {
	Request `gorm:"embedded"`

	TechnicianFirstName *string `gorm:"column:technician_first_name;->" json:"technician_first_name"`
	TechnicianSurname   *string `gorm:"column:technician_surname;->" json:"technician_surname"`
	TechnicianEmail     *string `gorm:"column:technician_email;->" json:"technician_email"`
	CircuitNumber       *string `gorm:"column:circuit_number;->" json:"circuit_number"`
	SiteName            *string `gorm:"column:site_name;->" json:"site_name"`
}
