package service

import (
	"context"
	"math"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/observability/metrics"
	"github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Pricing *config.PricingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	pricing *config.PricingConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("pricesheet.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		pricing: p.Pricing,
		metrics: p.Metrics,
	}
}

func (s *Service) Lookup(ctx context.Context, clientID, orderType string) (*costing.PriceSheet, error) {
	clientID, err := parseUUID(clientID, domain.ErrInvalidClientID)
	if err != nil {
		return nil, err
	}
	normalized, alt := domain.NormalizeOrderType(orderType)
	if normalized == "" {
		return nil, domain.ErrInvalidOrderType
	}

	row, err := s.repo.FindLatest(ctx, s.db, clientID, []string{normalized, alt})
	if err != nil {
		return nil, err
	}
	if row == nil {
		s.metrics.RecordPriceSheetMiss(ctx, normalized)
		s.log.Debug("no price sheet for client",
			zap.String("client_id", clientID),
			zap.String("order_type", normalized),
		)
		return nil, nil
	}
	return row.PriceSheet(), nil
}

func (s *Service) ResolveRates(ctx context.Context, clientID, orderType string) (costing.Rates, error) {
	sheet, err := s.Lookup(ctx, clientID, orderType)
	if err != nil {
		return costing.Rates{}, err
	}
	return costing.ResolveRates(sheet, s.defaults()), nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]domain.ServiceCost, error) {
	clientID, err := parseUUID(clientID, domain.ErrInvalidClientID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.ServiceCost, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceCostRequest) (domain.ServiceCost, error) {
	clientID, err := parseUUID(req.ClientID, domain.ErrInvalidClientID)
	if err != nil {
		return domain.ServiceCost{}, err
	}
	orderType, err := validOrderType(req.OrderType)
	if err != nil {
		return domain.ServiceCost{}, err
	}
	if err := validateRates(req.Rates); err != nil {
		return domain.ServiceCost{}, err
	}

	now := s.clock.Now()
	row := domain.ServiceCost{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		OrderType: orderType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRates(&row, req.Rates)

	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		return domain.ServiceCost{}, err
	}
	s.log.Info("price sheet created",
		zap.String("service_cost_id", row.ID),
		zap.String("client_id", clientID),
		zap.String("order_type", orderType),
	)
	return row, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateServiceCostRequest) (domain.ServiceCost, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.ServiceCost{}, err
	}
	if err := validateRates(req.Rates); err != nil {
		return domain.ServiceCost{}, err
	}

	values := rateValues(req.Rates)
	if req.OrderType != nil {
		orderType, err := validOrderType(*req.OrderType)
		if err != nil {
			return domain.ServiceCost{}, err
		}
		values["order_type"] = orderType
	}
	if len(values) == 0 {
		return domain.ServiceCost{}, domain.ErrEmptyUpdate
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ServiceCost{}, err
	}
	if existing == nil {
		return domain.ServiceCost{}, domain.ErrNotFound
	}

	values["updated_at"] = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, id, values); err != nil {
		return domain.ServiceCost{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ServiceCost{}, err
	}
	if updated == nil {
		return domain.ServiceCost{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) defaults() costing.Defaults {
	if s.pricing == nil {
		return costing.DefaultRates()
	}
	return s.pricing.Get().Defaults
}

func parseUUID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}

func validOrderType(raw string) (string, error) {
	normalized, _ := domain.NormalizeOrderType(raw)
	switch normalized {
	case domain.OrderTypeDropCable, domain.OrderTypeLinkBuild:
		return normalized, nil
	default:
		return "", domain.ErrInvalidOrderType
	}
}

func validateRates(r domain.Rates) error {
	for _, v := range rateValues(r) {
		rate, ok := v.(*float64)
		if !ok || rate == nil {
			continue
		}
		if math.IsNaN(*rate) || math.IsInf(*rate, 0) || *rate < 0 {
			return domain.ErrInvalidRate
		}
	}
	return nil
}

// rateValues lists the rate columns that were provided.
func rateValues(r domain.Rates) map[string]any {
	columns := map[string]*float64{
		"survey_planning_cost":                  r.SurveyPlanningCost,
		"callout_cost":                          r.CalloutCost,
		"installation_cost":                     r.InstallationCost,
		"per_meter_rate":                        r.PerMeterRate,
		"discount":                              r.Discount,
		"spon_budi_opti_cost":                   r.SponBudiOptiCost,
		"splitter_install_cost":                 r.SplitterInstallCost,
		"mousepad_install_cost":                 r.MousepadInstallCost,
		"full_splice_cost":                      r.FullSpliceCost,
		"full_splice_float_cost":                r.FullSpliceFloatCost,
		"full_splice_broadband_cost":            r.FullSpliceBroadbandCost,
		"access_float_cost":                     r.AccessFloatCost,
		"link_build_discount_15_cost":           r.LinkBuildDiscount15Cost,
		"link_build_broadband_discount_15_cost": r.LinkBuildBroadbandDiscount15Cost,
		"link_build_float_discount_15_cost":     r.LinkBuildFloatDiscount15Cost,
		"splice_per_km_after_15_cost":           r.SplicePerKmAfter15Cost,
	}
	values := make(map[string]any, len(columns))
	for column, v := range columns {
		if v != nil {
			values[column] = v
		}
	}
	return values
}

func applyRates(row *domain.ServiceCost, r domain.Rates) {
	row.SurveyPlanningCost = r.SurveyPlanningCost
	row.CalloutCost = r.CalloutCost
	row.InstallationCost = r.InstallationCost
	row.PerMeterRate = r.PerMeterRate
	row.Discount = r.Discount
	row.SponBudiOptiCost = r.SponBudiOptiCost
	row.SplitterInstallCost = r.SplitterInstallCost
	row.MousepadInstallCost = r.MousepadInstallCost
	row.FullSpliceCost = r.FullSpliceCost
	row.FullSpliceFloatCost = r.FullSpliceFloatCost
	row.FullSpliceBroadbandCost = r.FullSpliceBroadbandCost
	row.AccessFloatCost = r.AccessFloatCost
	row.LinkBuildDiscount15Cost = r.LinkBuildDiscount15Cost
	row.LinkBuildBroadbandDiscount15Cost = r.LinkBuildBroadbandDiscount15Cost
	row.LinkBuildFloatDiscount15Cost = r.LinkBuildFloatDiscount15Cost
	row.SplicePerKmAfter15Cost = r.SplicePerKmAfter15Cost
}
