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

	PhysicalAddressSiteB  *string `json:"physical_address_site_b"`
	PM                    *string `json:"pm"`
	Client                *string `json:"client"`
	ClientContactName     *string `json:"client_contact_name"`
	EndClientContactName  *string `json:"end_client_contact_name"`
	EndClientContactEmail *string `json:"end_client_contact_email"`
	EndClientContactPhone *string `json:"end_client_contact_phone"`
	ServiceProvider       *string `json:"service_provider"`

	DPCDistanceMeters *float64 `json:"dpc_distance_meters"`

	SurveyScheduledDate                    *string `json:"survey_scheduled_date"`
	SurveyScheduledTime                    *string `json:"survey_scheduled_time"`
	SurveyCompletedAt                      *string `json:"survey_completed_at"`
	InstallationScheduledDate              *string `json:"installation_scheduled_date"`
	InstallationScheduledTime              *string `json:"installation_scheduled_time"`
	InstallationCompletedDate              *string `json:"installation_completed_date"`
	LLASentAt                              *string `json:"lla_sent_at"`
	LLAReceivedAt                          *string `json:"lla_received_at"`
	AsBuiltSubmittedAt                     *string `json:"as_built_submitted_at"`
	InstallationCompleteAsBuiltOutstanding *string `json:"installation_complete_as_built_outstanding"`

	LinkManager    *string `json:"link_manager"`
	TechnicianName *string `json:"technician_name"`
	TechnicianID   *string `json:"technician_id"`

	SurveyPlanning  *bool `json:"survey_planning"`
	Callout         *bool `json:"callout"`
	Installation    *bool `json:"installation"`
	SponBudiOpti    *bool `json:"spon_budi_opti"`
	SplitterInstall *bool `json:"splitter_install"`
	MousepadInstall *bool `json:"mousepad_install"`

	SurveyMultiplier         *float64 `json:"survey_multiplier"`
	CalloutMultiplier        *float64 `json:"callout_multiplier"`
	InstallCompletionPercent *float64 `json:"install_completion_percent"`
	AdditionalCost           *float64 `json:"additonal_cost"`
	AdditionalCostReason     *string  `json:"additonal_cost_reason"`

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

// OrderCosts is the priced view of a single order.
type OrderCosts struct {
	OrderID        string                     `json:"order_id"`
	CircuitNumber  string                     `json:"circuit_number"`
	QuoteNo        *string                    `json:"quote_no"`
	Week           *string                    `json:"week"`
	Breakdown      costing.DropCableBreakdown `json:"breakdown"`
	Subtotal       float64                    `json:"subtotal"`
	AdditionalCost float64                    `json:"additional_cost"`
	Total          float64                    `json:"total"`
}

type WeeklyTotalsRequest struct {
	ClientID  string
	OrderType string
	Week      string
}

type WeeklyItem struct {
	OrderID       string                     `json:"order_id"`
	CircuitNumber string                     `json:"circuit_number"`
	SiteBName     string                     `json:"site_b_name"`
	QuoteNo       *string                    `json:"quote_no"`
	Breakdown     costing.DropCableBreakdown `json:"breakdown"`
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

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// AccessRequest asks an end client for site access.
type AccessRequest struct {
	OrderID       string
	To            string
	ContactName   string
	RequestedDate string
	Message       string
	SenderName    string
}

type Service interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	ListByClient(ctx context.Context, clientID string) ([]ClientOrder, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]Order, error)
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)
	Update(ctx context.Context, req UpdateOrderRequest) (Order, error)
	Delete(ctx context.Context, id string) error

	Costs(ctx context.Context, id string) (OrderCosts, error)
	WeeklyTotals(ctx context.Context, req WeeklyTotalsRequest) (WeeklyTotals, error)
	ExportWeeklyTotals(ctx context.Context, req WeeklyTotalsRequest) (File, error)
	WeeklyQuote(ctx context.Context, req WeeklyTotalsRequest) (File, error)

	SendAccessRequest(ctx context.Context, req AccessRequest) error
}

var (
	ErrInvalidID                = errors.New("invalid_id")
	ErrInvalidClientID          = errors.New("invalid_client_id")
	ErrInvalidTechnicianID      = errors.New("invalid_technician_id")
	ErrInvalidCircuitNumber     = errors.New("invalid_circuit_number")
	ErrInvalidSiteBName         = errors.New("invalid_site_b_name")
	ErrInvalidCounty            = errors.New("invalid_county")
	ErrInvalidStatus            = errors.New("invalid_status")
	ErrInvalidEmail             = errors.New("invalid_email")
	ErrInvalidDistance          = errors.New("invalid_distance")
	ErrInvalidCompletionPercent = errors.New("invalid_completion_percent")
	ErrInvalidAdditionalCost    = errors.New("invalid_additional_cost")
	ErrInvalidWeek              = errors.New("invalid_week")
	ErrInvalidOrderType         = errors.New("invalid_order_type")
	ErrMissingRecipient         = errors.New("invalid_recipient")
	ErrEmptyUpdate              = errors.New("invalid_update")
	ErrNotFound                 = errors.New("not_found")
)
