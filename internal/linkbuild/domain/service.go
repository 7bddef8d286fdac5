package domain

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/job"
)

// Fields are the writable order columns. Nil means "not provided"; an empty
// string clears a text column.
type Fields struct {
	ClientID      *string `json:"client_id"`
	CircuitNumber *string `json:"circuit_number"`
	SiteBName     *string `json:"site_b_name"`
	County        *string `json:"county"`

	PM                *string `json:"pm"`
	Client            *string `json:"client"`
	ClientContactName *string `json:"client_contact_name"`

	ATPPackSubmitted *string `json:"atp_pack_submitted"`
	SpliceAndFloat   *string `json:"splice_and_float"`
	CheckDate        *string `json:"check_date"`
	SubmissionDate   *string `json:"submission_date"`
	ATPPackLoaded    *string `json:"atp_pack_loaded"`
	ATPDate          *string `json:"atp_date"`

	Technician   *string `json:"technician"`
	TechnicianID *string `json:"technician_id"`

	ServiceType          *string  `json:"service_type"`
	NoOfFiberPairs       *int     `json:"no_of_fiber_pairs"`
	LinkDistance         *float64 `json:"link_distance"`
	NoOfSplicesAfter15km *int     `json:"no_of_splices_after_15km"`

	Status *string `json:"status"`
}

type CreateOrderRequest struct {
	Fields
	Week  job.WeekInput
	Notes *job.NotesInput
}

type UpdateOrderRequest struct {
	ID string
	Fields
	Week  job.WeekInput
	Notes *job.NotesInput
}

type OrderCosts struct {
	OrderID       string                     `json:"order_id"`
	CircuitNumber *string                    `json:"circuit_number"`
	QuoteNo       *string                    `json:"quote_no"`
	Week          *string                    `json:"week"`
	Breakdown     costing.LinkBuildBreakdown `json:"breakdown"`
	Total         float64                    `json:"total"`
}

type WeeklyTotalsRequest struct {
	ClientID  string
	OrderType string
	Week      string
}

type WeeklyItem struct {
	OrderID       string                     `json:"order_id"`
	CircuitNumber *string                    `json:"circuit_number"`
	QuoteNo       *string                    `json:"quote_no"`
	Breakdown     costing.LinkBuildBreakdown `json:"breakdown"`
	Total         float64                    `json:"total"`
}

type WeeklyTotals struct {
	ClientID  string       `json:"client_id"`
	Week      string       `json:"week"`
	OrderType string       `json:"order_type"`
	Count     int          `json:"count"`
	Total     float64      `json:"total"`
	Items     []WeeklyItem `json:"items"`
}

type Service interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	ListByClientName(ctx context.Context, clientName string) ([]Order, error)
	ListByTechnicianName(ctx context.Context, technicianName string) ([]Order, error)
	ListByTechnicianID(ctx context.Context, technicianID string) ([]Order, error)
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)
	Update(ctx context.Context, req UpdateOrderRequest) (Order, error)
	Delete(ctx context.Context, id string) error

	Costs(ctx context.Context, id string) (OrderCosts, error)
	WeeklyTotals(ctx context.Context, req WeeklyTotalsRequest) (WeeklyTotals, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidClientID     = errors.New("invalid_client_id")
	ErrInvalidClientName   = errors.New("invalid_client_name")
	ErrInvalidTechnician   = errors.New("invalid_technician")
	ErrInvalidTechnicianID = errors.New("invalid_technician_id")
	ErrInvalidCounty       = errors.New("invalid_county")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidServiceType  = errors.New("invalid_service_type")
	ErrInvalidFiberPairs   = errors.New("invalid_fiber_pairs")
	ErrInvalidDistance     = errors.New("invalid_distance")
	ErrInvalidSplices      = errors.New("invalid_splices")
	ErrInvalidWeek         = errors.New("invalid_week")
	ErrInvalidOrderType    = errors.New("invalid_order_type")
	ErrNotFound            = errors.New("not_found")
)
