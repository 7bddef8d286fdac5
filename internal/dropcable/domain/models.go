package domain

import (
	"time"

	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/job"
)

const (
	CountyTableBay = "tablebay"
	CountyFalseBay = "falsebay"
)

// Statuses lists the drop-cable workflow states.
var Statuses = []string{
	"awaiting_client_confirmation_date",
	"survey_required",
	"survey_scheduled",
	"survey_completed",
	"lla_required",
	"awaiting_lla_approval",
	"lla_received",
	"installation_scheduled",
	"installation_completed",
	"installation_complete_as_built_outstanding",
	"as_built_submitted",
	"issue_logged",
	"on_hold",
	"awaiting_health_and_safety",
	"planning_document_submitted",
	"awaiting_service_provider",
	"adw_required",
	"site_not_ready",
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
	return county == CountyTableBay || county == CountyFalseBay
}

// Order is a drop-cable job row. The additonal_cost spelling is the stored
// column name and is kept on the wire.
type Order struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	ClientID      *string `gorm:"type:uuid;index" json:"client_id"`
	CircuitNumber string  `gorm:"not null" json:"circuit_number"`
	SiteBName     string  `gorm:"column:site_b_name;not null" json:"site_b_name"`
	County        *string `json:"county"`

	PhysicalAddressSiteB  *string `gorm:"column:physical_address_site_b" json:"physical_address_site_b"`
	PM                    *string `gorm:"column:pm" json:"pm"`
	Client                *string `json:"client"`
	ClientContactName     *string `json:"client_contact_name"`
	EndClientContactName  *string `json:"end_client_contact_name"`
	EndClientContactEmail *string `json:"end_client_contact_email"`
	EndClientContactPhone *string `json:"end_client_contact_phone"`
	ServiceProvider       *string `json:"service_provider"`

	DPCDistanceMeters *float64 `gorm:"column:dpc_distance_meters" json:"dpc_distance_meters"`

	SurveyScheduledDate                    *string `json:"survey_scheduled_date"`
	SurveyScheduledTime                    *string `json:"survey_scheduled_time"`
	SurveyCompletedAt                      *string `json:"survey_completed_at"`
	InstallationScheduledDate              *string `json:"installation_scheduled_date"`
	InstallationScheduledTime              *string `json:"installation_scheduled_time"`
	InstallationCompletedDate              *string `json:"installation_completed_date"`
	LLASentAt                              *string `gorm:"column:lla_sent_at" json:"lla_sent_at"`
	LLAReceivedAt                          *string `gorm:"column:lla_received_at" json:"lla_received_at"`
	AsBuiltSubmittedAt                     *string `json:"as_built_submitted_at"`
	InstallationCompleteAsBuiltOutstanding *string `json:"installation_complete_as_built_outstanding"`

	LinkManager    *string `json:"link_manager"`
	Week           *string `gorm:"index" json:"week"`
	QuoteNo        *string `json:"quote_no"`
	TechnicianName *string `json:"technician_name"`
	TechnicianID   *string `gorm:"type:uuid;index" json:"technician_id"`

	SurveyPlanning  bool `gorm:"not null" json:"survey_planning"`
	Callout         bool `gorm:"not null" json:"callout"`
	Installation    bool `gorm:"not null" json:"installation"`
	SponBudiOpti    bool `gorm:"not null" json:"spon_budi_opti"`
	SplitterInstall bool `gorm:"not null" json:"splitter_install"`
	MousepadInstall bool `gorm:"not null" json:"mousepad_install"`

	SurveyMultiplier         *float64 `json:"survey_multiplier"`
	CalloutMultiplier        *float64 `json:"callout_multiplier"`
	InstallCompletionPercent *float64 `json:"install_completion_percent"`
	AdditionalCost           *float64 `gorm:"column:additonal_cost" json:"additonal_cost"`
	AdditionalCostReason     *string  `gorm:"column:additonal_cost_reason" json:"additonal_cost_reason"`

	Status        *string         `json:"status"`
	Notes         job.Notes       `gorm:"not null" json:"notes"`
	InventoryUsed job.UsageLedger `gorm:"not null" json:"inventory_used"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "drop_cable" }

// ClientOrder is an order joined with its client's company name.
type ClientOrder struct {
	Order             `gorm:"embedded"`
	ClientCompanyName *string `gorm:"column:client_company_name;->" json:"client_company_name"`
}

// CostInput extracts the fields that drive the price.
func (o Order) CostInput() costing.DropCableOrder {
	reason := ""
	if o.AdditionalCostReason != nil {
		reason = *o.AdditionalCostReason
	}
	return costing.DropCableOrder{
		SurveyPlanning:           o.SurveyPlanning,
		Callout:                  o.Callout,
		Installation:             o.Installation,
		SponBudiOpti:             o.SponBudiOpti,
		SplitterInstall:          o.SplitterInstall,
		MousepadInstall:          o.MousepadInstall,
		DistanceMeters:           o.DPCDistanceMeters,
		InstallCompletionPercent: o.InstallCompletionPercent,
		SurveyMultiplier:         o.SurveyMultiplier,
		CalloutMultiplier:        o.CalloutMultiplier,
		AdditionalCost:           o.AdditionalCost,
		AdditionalCostReason:     reason,
	}
}
