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
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/internal/observability/metrics"
	pricedomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderKind = "link_build"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Repo        domain.Repository
	Clients     clientdomain.Service
	PriceSheets pricedomain.Service
	Pricing     *config.PricingConfigHolder
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
	activity    activitydomain.Service
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("linkbuild.service"),
		clock:       p.Clock,
		repo:        p.Repo,
		clients:     p.Clients,
		priceSheets: p.PriceSheets,
		pricing:     p.Pricing,
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

func (s *Service) ListByClientName(ctx context.Context, clientName string) ([]domain.Order, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, domain.ErrInvalidClientName
	}
	items, err := s.repo.ListByClientName(ctx, s.db, clientName)
	if err != nil {
		return nil, err
	}
	return derefOrders(items), nil
}

func (s *Service) ListByTechnicianName(ctx context.Context, technicianName string) ([]domain.Order, error) {
	technicianName = strings.TrimSpace(technicianName)
	if technicianName == "" {
		return nil, domain.ErrInvalidTechnician
	}
	items, err := s.repo.ListByTechnicianName(ctx, s.db, technicianName)
	if err != nil {
		return nil, err
	}
	return derefOrders(items), nil
}

func (s *Service) ListByTechnicianID(ctx context.Context, technicianID string) ([]domain.Order, error) {
	technicianID, err := parseUUID(technicianID, domain.ErrInvalidTechnicianID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByTechnicianID(ctx, s.db, technicianID)
	if err != nil {
		return nil, err
	}
	return derefOrders(items), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	fields, err := normalizeFields(req.Fields)
	if err != nil {
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
	applyFields(&order, fields)
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

	logger.WithOrder(s.log, orderKind, order.ID).Info("link build order created",
		zap.Stringp("week", order.Week),
		zap.Stringp("quote_no", order.QuoteNo),
	)
	s.record(ctx, "link_build.created", order.ID, "Link build order created")
	return order, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.Order, error) {
	id, err := parseUUID(req.ID, domain.ErrInvalidID)
	if err != nil {
		return domain.Order{}, err
	}
	fields, err := normalizeFields(req.Fields)
	if err != nil {
		return domain.Order{}, err
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
	values := applyFields(&merged, fields)

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

	logger.WithOrder(s.log, orderKind, id).Info("link build order updated", zap.Int("columns", len(values)))
	s.record(ctx, "link_build.updated", id, "Link build order updated")
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
	logger.WithOrder(s.log, orderKind, id).Info("link build order deleted")
	s.record(ctx, "link_build.deleted", id, "Link build order deleted")
	return nil
}

func (s *Service) Costs(ctx context.Context, id string) (domain.OrderCosts, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return domain.OrderCosts{}, err
	}

	rates := costing.ResolveRates(nil, costing.Defaults{})
	if order.ClientID != nil {
		rates, err = s.priceSheets.ResolveRates(ctx, *order.ClientID, pricedomain.OrderTypeLinkBuild)
		if err != nil {
			return domain.OrderCosts{}, err
		}
	}

	breakdown := costing.ComputeLinkBuild(order.CostInput(), rates)
	s.metrics.RecordCostComputation(ctx, orderKind)

	return domain.OrderCosts{
		OrderID:       order.ID,
		CircuitNumber: order.CircuitNumber,
		QuoteNo:       order.QuoteNo,
		Week:          order.Week,
		Breakdown:     breakdown,
		Total:         breakdown.Total,
	}, nil
}

func (s *Service) WeeklyTotals(ctx context.Context, req domain.WeeklyTotalsRequest) (domain.WeeklyTotals, error) {
	clientID, err := parseUUID(req.ClientID, domain.ErrInvalidClientID)
	if err != nil {
		return domain.WeeklyTotals{}, err
	}
	if strings.TrimSpace(req.OrderType) != "" {
		normalized, _ := pricedomain.NormalizeOrderType(req.OrderType)
		if normalized != pricedomain.OrderTypeLinkBuild {
			return domain.WeeklyTotals{}, domain.ErrInvalidOrderType
		}
	}
	week, ok := costing.CanonicalizeWeek(req.Week, s.clock.Now())
	if !ok {
		return domain.WeeklyTotals{}, domain.ErrInvalidWeek
	}

	items, err := s.repo.ListForClientAndWeek(ctx, s.db, clientID, week)
	if err != nil {
		return domain.WeeklyTotals{}, err
	}
	orders := derefOrders(items)

	rates, err := s.priceSheets.ResolveRates(ctx, clientID, pricedomain.OrderTypeLinkBuild)
	if err != nil {
		return domain.WeeklyTotals{}, err
	}

	out := domain.WeeklyTotals{
		ClientID:  clientID,
		Week:      week,
		OrderType: pricedomain.OrderTypeLinkBuild,
		Count:     len(orders),
		Items:     make([]domain.WeeklyItem, 0, len(orders)),
	}
	totals := make([]float64, 0, len(orders))
	for _, order := range orders {
		breakdown := costing.ComputeLinkBuild(order.CostInput(), rates)
		out.Items = append(out.Items, domain.WeeklyItem{
			OrderID:       order.ID,
			CircuitNumber: order.CircuitNumber,
			QuoteNo:       order.QuoteNo,
			Breakdown:     breakdown,
			Total:         breakdown.Total,
		})
		totals = append(totals, breakdown.Total)
		s.metrics.RecordCostComputation(ctx, orderKind)
	}
	out.Total = costing.Sum2(totals...)
	return out, nil
}

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

	rules := config.DefaultPricingConfig().QuoteRules
	if s.pricing != nil {
		rules = s.pricing.Get().QuoteRules
	}
	quote, prefix := job.Quote(rules, name, order.Week, s.clock.Now())
	if quote != nil {
		s.metrics.RecordQuoteIssued(ctx, prefix)
	}
	return quote, nil
}

func (s *Service) record(ctx context.Context, action, orderID, message string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, activitydomain.Entry{
		Action:     action,
		EntityType: orderKind,
		EntityID:   orderID,
		Message:    message,
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// normalizeFields validates the request and rewrites the service type into
// its canonical spelling.
func normalizeFields(f domain.Fields) (domain.Fields, error) {
	if f.ClientID != nil && strings.TrimSpace(*f.ClientID) != "" {
		if _, err := parseUUID(*f.ClientID, domain.ErrInvalidClientID); err != nil {
			return f, err
		}
	}
	if f.TechnicianID != nil && strings.TrimSpace(*f.TechnicianID) != "" {
		if _, err := parseUUID(*f.TechnicianID, domain.ErrInvalidTechnicianID); err != nil {
			return f, err
		}
	}
	if county := nullable.String(f.County); county != nil && !domain.ValidCounty(*county) {
		return f, domain.ErrInvalidCounty
	}
	if status := nullable.String(f.Status); status != nil && !domain.ValidStatus(*status) {
		return f, domain.ErrInvalidStatus
	}
	if st := nullable.String(f.ServiceType); st != nil {
		parsed, ok := costing.ParseServiceType(*st)
		if !ok {
			return f, domain.ErrInvalidServiceType
		}
		normalized := string(parsed)
		f.ServiceType = &normalized
	}
	if f.NoOfFiberPairs != nil && *f.NoOfFiberPairs < 0 {
		return f, domain.ErrInvalidFiberPairs
	}
	if f.NoOfSplicesAfter15km != nil && *f.NoOfSplicesAfter15km < 0 {
		return f, domain.ErrInvalidSplices
	}
	if v := f.LinkDistance; v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
		return f, domain.ErrInvalidDistance
	}
	return f, nil
}

type textColumn struct {
	name string
	in   *string
	out  **string
}

// applyFields copies the provided fields onto the order and returns the
// changed columns. Text is trimmed and empty text becomes NULL.
func applyFields(o *domain.Order, f domain.Fields) map[string]any {
	values := map[string]any{}

	texts := []textColumn{
		{"client_id", f.ClientID, &o.ClientID},
		{"circuit_number", f.CircuitNumber, &o.CircuitNumber},
		{"site_b_name", f.SiteBName, &o.SiteBName},
		{"county", f.County, &o.County},
		{"pm", f.PM, &o.PM},
		{"client", f.Client, &o.Client},
		{"client_contact_name", f.ClientContactName, &o.ClientContactName},
		{"atp_pack_submitted", f.ATPPackSubmitted, &o.ATPPackSubmitted},
		{"splice_and_float", f.SpliceAndFloat, &o.SpliceAndFloat},
		{"check_date", f.CheckDate, &o.CheckDate},
		{"submission_date", f.SubmissionDate, &o.SubmissionDate},
		{"atp_pack_loaded", f.ATPPackLoaded, &o.ATPPackLoaded},
		{"atp_date", f.ATPDate, &o.ATPDate},
		{"technician", f.Technician, &o.Technician},
		{"technician_id", f.TechnicianID, &o.TechnicianID},
		{"service_type", f.ServiceType, &o.ServiceType},
		{"status", f.Status, &o.Status},
	}
	for _, c := range texts {
		if c.in == nil {
			continue
		}
		*c.out = nullable.String(c.in)
		values[c.name] = nullable.Column(*c.out)
	}

	if f.NoOfFiberPairs != nil {
		v := *f.NoOfFiberPairs
		o.NoOfFiberPairs = &v
		values["no_of_fiber_pairs"] = v
	}
	if f.NoOfSplicesAfter15km != nil {
		v := *f.NoOfSplicesAfter15km
		o.NoOfSplicesAfter15km = &v
		values["no_of_splices_after_15km"] = v
	}
	if f.LinkDistance != nil {
		v := *f.LinkDistance
		o.LinkDistance = &v
		values["link_distance"] = v
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
