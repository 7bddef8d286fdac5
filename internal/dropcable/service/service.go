package service

import (
	"context"
	"math"
	"strings"

	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/internal/observability/metrics"
	pricedomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/fiberafrica/missioncontrol/internal/providers/email"
	"github.com/fiberafrica/missioncontrol/internal/providers/pdf"
	"github.com/fiberafrica/missioncontrol/internal/providers/spreadsheet"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderKind = "drop_cable"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Repo        domain.Repository
	Clients     clientdomain.Service
	PriceSheets pricedomain.Service
	Pricing     *config.PricingConfigHolder
	PDF         pdf.Provider
	Spreadsheet spreadsheet.Provider
	Email       email.Provider
	Activity    activitydomain.Service `optional:"true"`
	Metrics     *metrics.Metrics       `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	repo        domain.Repository
	clients     clientdomain.Service
	priceSheets pricedomain.Service
	pricing     *config.PricingConfigHolder
	pdf         pdf.Provider
	spreadsheet spreadsheet.Provider
	email       email.Provider
	activity    activitydomain.Service
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dropcable.service"),
		clock:       p.Clock,
		repo:        p.Repo,
		clients:     p.Clients,
		priceSheets: p.PriceSheets,
		pricing:     p.Pricing,
		pdf:         p.PDF,
		spreadsheet: p.Spreadsheet,
		email:       p.Email,
		activity:    p.Activity,
		metrics:     p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return derefOrders(items), nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]domain.ClientOrder, error) {
	clientID, err := parseUUID(clientID, domain.ErrInvalidClientID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.ClientOrder, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}
	return orders, nil
}

func (s *Service) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Order, error) {
	technicianID, err := parseUUID(technicianID, domain.ErrInvalidTechnicianID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByTechnician(ctx, s.db, technicianID)
	if err != nil {
		return nil, err
	}
	return derefOrders(items), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.ClientID == nil {
		return domain.Order{}, domain.ErrInvalidClientID
	}
	if _, err := parseUUID(*req.ClientID, domain.ErrInvalidClientID); err != nil {
		return domain.Order{}, err
	}
	if nullable.String(req.CircuitNumber) == nil {
		return domain.Order{}, domain.ErrInvalidCircuitNumber
	}
	if nullable.String(req.SiteBName) == nil {
		return domain.Order{}, domain.ErrInvalidSiteBName
	}
	if err := validateFields(req.Fields); err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:            uuid.NewString(),
		Notes:         job.Notes{},
		InventoryUsed: job.UsageLedger{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyFields(&order, req.Fields)
	order.Week = req.Week.Canonical(now)
	if notes, ok := req.Notes.Apply(nil, now, false); ok {
		order.Notes = notes
	}

	quote, err := s.quoteFor(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	order.QuoteNo = quote

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}

	logger.WithOrder(s.log, orderKind, order.ID).Info("drop cable order created",
		zap.Stringp("week", order.Week),
		zap.Stringp("quote_no", order.QuoteNo),
	)
	s.record(ctx, "drop_cable.created", order.ID, "Drop cable order created", map[string]any{
		"circuit_number": order.CircuitNumber,
	})
	return order, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.Order, error) {
	id, err := parseUUID(req.ID, domain.ErrInvalidID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := validateFields(req.Fields); err != nil {
		return domain.Order{}, err
	}
	if req.CircuitNumber != nil && nullable.String(req.CircuitNumber) == nil {
		return domain.Order{}, domain.ErrInvalidCircuitNumber
	}
	if req.SiteBName != nil && nullable.String(req.SiteBName) == nil {
		return domain.Order{}, domain.ErrInvalidSiteBName
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if existing == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	now := s.clock.Now()
	merged := *existing
	values := applyFields(&merged, req.Fields)

	if req.Week.Set {
		merged.Week = req.Week.Canonical(now)
		values["week"] = nullable.Column(merged.Week)
	}
	if notes, ok := req.Notes.Apply(existing.Notes, now, true); ok {
		values["notes"] = job.Notes(notes)
	}
	if req.Week.Set || req.ClientID != nil || req.Client != nil {
		quote, err := s.quoteFor(ctx, merged)
		if err != nil {
			return domain.Order{}, err
		}
		values["quote_no"] = nullable.Column(quote)
	}
	if len(values) == 0 {
		return *existing, nil
	}

	values["updated_at"] = now
	if err := s.repo.Update(ctx, s.db, id, values); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if updated == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	logger.WithOrder(s.log, orderKind, id).Info("drop cable order updated", zap.Int("columns", len(values)))
	s.record(ctx, "drop_cable.updated", id, "Drop cable order updated", map[string]any{
		"circuit_number": updated.CircuitNumber,
	})
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	logger.WithOrder(s.log, orderKind, id).Info("drop cable order deleted")
	s.record(ctx, "drop_cable.deleted", id, "Drop cable order deleted", nil)
	return nil
}

// quoteFor resolves the client display name, falling back to the free-text
// client field, and derives the quote number.
func (s *Service) quoteFor(ctx context.Context, order domain.Order) (*string, error) {
	name := ""
	if order.ClientID != nil {
		var err error
		name, err = s.clients.DisplayName(ctx, *order.ClientID)
		if err != nil {
			return nil, err
		}
	}
	if name == "" {
		name = nullable.Value(order.Client)
	}

	quote, prefix := job.Quote(s.quoteRules(), name, order.Week, s.clock.Now())
	if quote != nil {
		s.metrics.RecordQuoteIssued(ctx, prefix)
	}
	return quote, nil
}

func (s *Service) quoteRules() []costing.QuoteRule {
	if s.pricing == nil {
		return config.DefaultPricingConfig().QuoteRules
	}
	return s.pricing.Get().QuoteRules
}

func (s *Service) record(ctx context.Context, action, orderID, message string, metadata map[string]any) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, activitydomain.Entry{
		Action:     action,
		EntityType: orderKind,
		EntityID:   orderID,
		Message:    message,
		Metadata:   metadata,
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

func validateFields(f domain.Fields) error {
	if f.ClientID != nil && strings.TrimSpace(*f.ClientID) != "" {
		if _, err := parseUUID(*f.ClientID, domain.ErrInvalidClientID); err != nil {
			return err
		}
	}
	if f.TechnicianID != nil && strings.TrimSpace(*f.TechnicianID) != "" {
		if _, err := parseUUID(*f.TechnicianID, domain.ErrInvalidTechnicianID); err != nil {
			return err
		}
	}
	if county := nullable.String(f.County); county != nil && !domain.ValidCounty(*county) {
		return domain.ErrInvalidCounty
	}
	if status := nullable.String(f.Status); status != nil && !domain.ValidStatus(*status) {
		return domain.ErrInvalidStatus
	}
	if email := nullable.String(f.EndClientContactEmail); email != nil && !validEmail(*email) {
		return domain.ErrInvalidEmail
	}
	if !nonNegative(f.DPCDistanceMeters) {
		return domain.ErrInvalidDistance
	}
	if !nonNegative(f.AdditionalCost) {
		return domain.ErrInvalidAdditionalCost
	}
	if v := f.InstallCompletionPercent; v != nil && (!nonNegative(v) || *v > 100) {
		return domain.ErrInvalidCompletionPercent
	}
	return nil
}

type textColumn struct {
	name string
	in   *string
	out  **string
}

type floatColumn struct {
	name string
	in   *float64
	out  **float64
}

type flagColumn struct {
	name string
	in   *bool
	out  *bool
}

// applyFields copies the provided fields onto the order and returns the
// changed columns. Text is trimmed and empty text becomes NULL.
func applyFields(o *domain.Order, f domain.Fields) map[string]any {
	values := map[string]any{}

	if v := nullable.String(f.CircuitNumber); v != nil {
		o.CircuitNumber = *v
		values["circuit_number"] = *v
	}
	if v := nullable.String(f.SiteBName); v != nil {
		o.SiteBName = *v
		values["site_b_name"] = *v
	}

	texts := []textColumn{
		{"client_id", f.ClientID, &o.ClientID},
		{"county", f.County, &o.County},
		{"physical_address_site_b", f.PhysicalAddressSiteB, &o.PhysicalAddressSiteB},
		{"pm", f.PM, &o.PM},
		{"client", f.Client, &o.Client},
		{"client_contact_name", f.ClientContactName, &o.ClientContactName},
		{"end_client_contact_name", f.EndClientContactName, &o.EndClientContactName},
		{"end_client_contact_email", f.EndClientContactEmail, &o.EndClientContactEmail},
		{"end_client_contact_phone", f.EndClientContactPhone, &o.EndClientContactPhone},
		{"service_provider", f.ServiceProvider, &o.ServiceProvider},
		{"survey_scheduled_date", f.SurveyScheduledDate, &o.SurveyScheduledDate},
		{"survey_scheduled_time", f.SurveyScheduledTime, &o.SurveyScheduledTime},
		{"survey_completed_at", f.SurveyCompletedAt, &o.SurveyCompletedAt},
		{"installation_scheduled_date", f.InstallationScheduledDate, &o.InstallationScheduledDate},
		{"installation_scheduled_time", f.InstallationScheduledTime, &o.InstallationScheduledTime},
		{"installation_completed_date", f.InstallationCompletedDate, &o.InstallationCompletedDate},
		{"lla_sent_at", f.LLASentAt, &o.LLASentAt},
		{"lla_received_at", f.LLAReceivedAt, &o.LLAReceivedAt},
		{"as_built_submitted_at", f.AsBuiltSubmittedAt, &o.AsBuiltSubmittedAt},
		{"installation_complete_as_built_outstanding", f.InstallationCompleteAsBuiltOutstanding, &o.InstallationCompleteAsBuiltOutstanding},
		{"link_manager", f.LinkManager, &o.LinkManager},
		{"technician_name", f.TechnicianName, &o.TechnicianName},
		{"technician_id", f.TechnicianID, &o.TechnicianID},
		{"additonal_cost_reason", f.AdditionalCostReason, &o.AdditionalCostReason},
		{"status", f.Status, &o.Status},
	}
	for _, c := range texts {
		if c.in == nil {
			continue
		}
		*c.out = nullable.String(c.in)
		values[c.name] = nullable.Column(*c.out)
	}

	floats := []floatColumn{
		{"dpc_distance_meters", f.DPCDistanceMeters, &o.DPCDistanceMeters},
		{"survey_multiplier", f.SurveyMultiplier, &o.SurveyMultiplier},
		{"callout_multiplier", f.CalloutMultiplier, &o.CalloutMultiplier},
		{"install_completion_percent", f.InstallCompletionPercent, &o.InstallCompletionPercent},
		{"additonal_cost", f.AdditionalCost, &o.AdditionalCost},
	}
	for _, c := range floats {
		if c.in == nil {
			continue
		}
		v := *c.in
		*c.out = &v
		values[c.name] = v
	}

	flags := []flagColumn{
		{"survey_planning", f.SurveyPlanning, &o.SurveyPlanning},
		{"callout", f.Callout, &o.Callout},
		{"installation", f.Installation, &o.Installation},
		{"spon_budi_opti", f.SponBudiOpti, &o.SponBudiOpti},
		{"splitter_install", f.SplitterInstall, &o.SplitterInstall},
		{"mousepad_install", f.MousepadInstall, &o.MousepadInstall},
	}
	for _, c := range flags {
		if c.in == nil {
			continue
		}
		*c.out = *c.in
		values[c.name] = *c.in
	}

	return values
}

func derefOrders(items []*domain.Order) []domain.Order {
	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}
	return orders
}

func parseUUID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}

func nonNegative(v *float64) bool {
	if v == nil {
		return true
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
