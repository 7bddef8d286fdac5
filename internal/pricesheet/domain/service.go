package domain

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/costing"
)

// Rates are the nullable rate columns shared by create and update requests.
type Rates struct {
	SurveyPlanningCost               *float64
	CalloutCost                      *float64
	InstallationCost                 *float64
	PerMeterRate                     *float64
	Discount                         *float64
	SponBudiOptiCost                 *float64
	SplitterInstallCost              *float64
	MousepadInstallCost              *float64
	FullSpliceCost                   *float64
	FullSpliceFloatCost              *float64
	FullSpliceBroadbandCost          *float64
	AccessFloatCost                  *float64
	LinkBuildDiscount15Cost          *float64
	LinkBuildBroadbandDiscount15Cost *float64
	LinkBuildFloatDiscount15Cost     *float64
	SplicePerKmAfter15Cost           *float64
}

type CreateServiceCostRequest struct {
	ClientID  string
	OrderType string
	Rates
}

type UpdateServiceCostRequest struct {
	OrderType *string
	Rates
}

type Service interface {
	// Lookup returns the client's price sheet for the order type, or nil when
	// none exists. A missing sheet is not an error.
	Lookup(ctx context.Context, clientID, orderType string) (*costing.PriceSheet, error)
	// ResolveRates looks up the sheet and applies the configured defaults.
	ResolveRates(ctx context.Context, clientID, orderType string) (costing.Rates, error)
	ListByClient(ctx context.Context, clientID string) ([]ServiceCost, error)
	Create(ctx context.Context, req CreateServiceCostRequest) (ServiceCost, error)
	Update(ctx context.Context, id string, req UpdateServiceCostRequest) (ServiceCost, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidClientID  = errors.New("invalid_client_id")
	ErrInvalidOrderType = errors.New("invalid_order_type")
	ErrInvalidRate      = errors.New("invalid_rate")
	ErrEmptyUpdate      = errors.New("invalid_update")
	ErrNotFound         = errors.New("not_found")
)
