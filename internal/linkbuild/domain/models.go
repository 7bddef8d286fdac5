package domain

import (
	"time"

	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/job"
)

// Statuses are stored as display labels.
var Statuses = []string{
	"Not Started",
	"Work in Progress",
	"Completed",
	"Completed Asbuild Outstanding",
	"Cancelled",
	"On Hold",
	"Awaiting Health and Safety",
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidCounty(county string) bool {
	return county == "tablebay" || county == "falsebay"
}

// Order is a link-build job row.
type Order struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	ClientID      *string `gorm:"type:uuid;index" json:"client_id"`
	CircuitNumber *string `json:"circuit_number"`
	SiteBName     *string `gorm:"column:site_b_name" json:"site_b_name"`
	County        *string `json:"county"`

	PM                *string `gorm:"column:pm" json:"pm"`
	Client            *string `gorm:"index" json:"client"`
	ClientContactName *string `json:"client_contact_name"`

	ATPPackSubmitted *string `gorm:"column:atp_pack_submitted" json:"atp_pack_submitted"`
	SpliceAndFloat   *string `json:"splice_and_float"`
	CheckDate        *string `json:"check_date"`
	SubmissionDate   *string `json:"submission_date"`
	ATPPackLoaded    *string `gorm:"column:atp_pack_loaded" json:"atp_pack_loaded"`
	ATPDate          *string `gorm:"column:atp_date" json:"atp_date"`

	Technician   *string `gorm:"index" json:"technician"`
	TechnicianID *string `gorm:"type:uuid;index" json:"technician_id"`

	ServiceType          *string  `json:"service_type"`
	NoOfFiberPairs       *int     `gorm:"column:no_of_fiber_pairs" json:"no_of_fiber_pairs"`
	LinkDistance         *float64 `json:"link_distance"`
	NoOfSplicesAfter15km *int     `gorm:"column:no_of_splices_after_15km" json:"no_of_splices_after_15km"`

	Status        *string         `json:"status"`
	Week          *string         `gorm:"index" json:"week"`
	QuoteNo       *string         `json:"quote_no"`
	Notes         job.Notes       `gorm:"not null" json:"notes"`
	InventoryUsed job.UsageLedger `gorm:"not null" json:"inventory_used"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "link_build" }

func (o Order) CostInput() costing.LinkBuildOrder {
	serviceType := ""
	if o.ServiceType != nil {
		serviceType = *o.ServiceType
	}
	return costing.LinkBuildOrder{
		ServiceType:      serviceType,
		FiberPairs:       o.NoOfFiberPairs,
		SplicesAfter15km: o.NoOfSplicesAfter15km,
	}
}
