package domain

import (
	"strings"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/costing"
)

const (
	OrderTypeDropCable = "drop_cable"
	OrderTypeLinkBuild = "link_build"
)

// ServiceCost is a client price sheet row. Rate columns are nullable.
type ServiceCost struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ClientID  string `gorm:"type:uuid;not null;index:idx_service_cost_client_order" json:"client_id"`
	OrderType string `gorm:"not null;index:idx_service_cost_client_order" json:"order_type"`

	SurveyPlanningCost  *float64 `json:"survey_planning_cost"`
	CalloutCost         *float64 `json:"callout_cost"`
	InstallationCost    *float64 `json:"installation_cost"`
	PerMeterRate        *float64 `json:"per_meter_rate"`
	Discount            *float64 `json:"discount"`
	SponBudiOptiCost    *float64 `json:"spon_budi_opti_cost"`
	SplitterInstallCost *float64 `json:"splitter_install_cost"`
	MousepadInstallCost *float64 `json:"mousepad_install_cost"`

	FullSpliceCost                   *float64 `json:"full_splice_cost"`
	FullSpliceFloatCost              *float64 `json:"full_splice_float_cost"`
	FullSpliceBroadbandCost          *float64 `json:"full_splice_broadband_cost"`
	AccessFloatCost                  *float64 `json:"access_float_cost"`
	LinkBuildDiscount15Cost          *float64 `gorm:"column:link_build_discount_15_cost" json:"link_build_discount_15_cost"`
	LinkBuildBroadbandDiscount15Cost *float64 `gorm:"column:link_build_broadband_discount_15_cost" json:"link_build_broadband_discount_15_cost"`
	LinkBuildFloatDiscount15Cost     *float64 `gorm:"column:link_build_float_discount_15_cost" json:"link_build_float_discount_15_cost"`
	SplicePerKmAfter15Cost           *float64 `gorm:"column:splice_per_km_after_15_cost" json:"splice_per_km_after_15_cost"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ServiceCost) TableName() string { return "service_cost" }

// PriceSheet hands the row to the cost engine.
func (s *ServiceCost) PriceSheet() *costing.PriceSheet {
	if s == nil {
		return nil
	}
	return &costing.PriceSheet{
		SurveyPlanningCost:               s.SurveyPlanningCost,
		CalloutCost:                      s.CalloutCost,
		InstallationCost:                 s.InstallationCost,
		PerMeterRate:                     s.PerMeterRate,
		Discount:                         s.Discount,
		SponBudiOptiCost:                 s.SponBudiOptiCost,
		SplitterInstallCost:              s.SplitterInstallCost,
		MousepadInstallCost:              s.MousepadInstallCost,
		FullSpliceCost:                   s.FullSpliceCost,
		FullSpliceFloatCost:              s.FullSpliceFloatCost,
		FullSpliceBroadbandCost:          s.FullSpliceBroadbandCost,
		AccessFloatCost:                  s.AccessFloatCost,
		LinkBuildDiscount15Cost:          s.LinkBuildDiscount15Cost,
		LinkBuildBroadbandDiscount15Cost: s.LinkBuildBroadbandDiscount15Cost,
		LinkBuildFloatDiscount15Cost:     s.LinkBuildFloatDiscount15Cost,
		SplicePerKmAfter15Cost:           s.SplicePerKmAfter15Cost,
	}
}

// NormalizeOrderType lowercases and converts hyphens to underscores. The
// second value is the hyphenated spelling older rows were stored with.
func NormalizeOrderType(raw string) (string, string) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	return normalized, strings.ReplaceAll(normalized, "_", "-")
}
