package service

import (
	"context"
	"math"
	"strings"

	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/pkg/db/option"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/fiberafrica/missioncontrol/pkg/repository"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// floorAtZero decrements quantity without letting it go negative.
const floorAtZero = "CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     repository.Repository[domain.Item]
	Activity activitydomain.Service `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     repository.Repository[domain.Item]
	activity activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("inventory.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		activity: p.Activity,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.repo.Find(ctx, &domain.Item{}, option.OrderBy("item_name", false))
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, *row)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Item, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Item{}, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, f domain.Fields) (domain.Item, error) {
	if f.ItemName == nil || strings.TrimSpace(*f.ItemName) == "" {
		return domain.Item{}, domain.ErrInvalidItemName
	}
	if err := validateFields(f); err != nil {
		return domain.Item{}, err
	}

	now := s.clock.Now()
	item := domain.Item{
		ID:              uuid.NewString(),
		ItemName:        strings.TrimSpace(*f.ItemName),
		ItemCode:        nullable.String(f.ItemCode),
		Description:     nullable.String(f.Description),
		Unit:            nullable.String(f.Unit),
		MinimumQuantity: f.MinimumQuantity,
		ReorderLevel:    f.ReorderLevel,
		Category:        nullable.String(f.Category),
		SupplierName:    nullable.String(f.SupplierName),
		SupplierContact: nullable.String(f.SupplierContact),
		Location:        nullable.String(f.Location),
		CostPrice:       f.CostPrice,
		SellingPrice:    f.SellingPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if f.Quantity != nil {
		item.Quantity = *f.Quantity
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return domain.Item{}, err
	}
	s.log.Info("inventory item created", zap.String("inventory_id", item.ID), zap.String("item_name", item.ItemName))
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, f domain.Fields) (domain.Item, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Item{}, err
	}
	if f.ItemName != nil && strings.TrimSpace(*f.ItemName) == "" {
		return domain.Item{}, domain.ErrInvalidItemName
	}
	if err := validateFields(f); err != nil {
		return domain.Item{}, err
	}

	values := map[string]any{}
	if f.ItemName != nil {
		values["item_name"] = strings.TrimSpace(*f.ItemName)
	}
	if f.Quantity != nil {
		values["quantity"] = *f.Quantity
	}
	for column, v := range map[string]*string{
		"item_code":        f.ItemCode,
		"description":      f.Description,
		"unit":             f.Unit,
		"category":         f.Category,
		"supplier_name":    f.SupplierName,
		"supplier_contact": f.SupplierContact,
		"location":         f.Location,
	} {
		if v != nil {
			values[column] = nullable.Column(nullable.String(v))
		}
	}
	for column, v := range map[string]*int{
		"minimum_quantity": f.MinimumQuantity,
		"reorder_level":    f.ReorderLevel,
	} {
		if v != nil {
			values[column] = *v
		}
	}
	for column, v := range map[string]*float64{
		"cost_price":    f.CostPrice,
		"selling_price": f.SellingPrice,
	} {
		if v != nil {
			values[column] = *v
		}
	}
	if len(values) == 0 {
		return domain.Item{}, domain.ErrEmptyUpdate
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if existing == nil {
		return domain.Item{}, domain.ErrNotFound
	}

	values["updated_at"] = s.clock.Now()
	if err := s.repo.Update(ctx, id, values); err != nil {
		return domain.Item{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}
	s.log.Info("inventory item deleted", zap.String("inventory_id", item.ID))
	return nil
}

func (s *Service) ApplyUsage(ctx context.Context, req domain.ApplyUsageRequest) (domain.UsageResult, error) {
	jobType, err := job.ParseType(req.JobType)
	if err != nil {
		return domain.UsageResult{}, err
	}
	jobID, err := parseUUID(req.JobID, domain.ErrInvalidJobID)
	if err != nil {
		return domain.UsageResult{}, err
	}
	if err := domain.ValidateUsage(req.Items); err != nil {
		return domain.UsageResult{}, err
	}

	result := domain.UsageResult{JobType: jobType, JobID: jobID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Fails with job.ErrJobNotFound before any stock moves.
		if _, err := job.InventoryUsed(ctx, tx, jobType, jobID); err != nil {
			return err
		}
		entries, err := s.Consume(ctx, tx, req.Items, domain.ConsumeOptions{})
		if err != nil {
			return err
		}
		ledger, err := job.AppendInventoryUsed(ctx, tx, jobType, jobID, entries)
		if err != nil {
			return err
		}
		result.Items = entries
		result.InventoryUsed = ledger
		return nil
	})
	if err != nil {
		return domain.UsageResult{}, err
	}

	s.record(ctx, "inventory.usage_applied", jobType, jobID, map[string]any{
		"items": len(result.Items),
		"note":  strings.TrimSpace(req.Note),
	})
	return result, nil
}

func (s *Service) JobUsage(ctx context.Context, jobType string, jobID string) ([]job.UsageEntry, error) {
	t, err := job.ParseType(jobType)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID(jobID, domain.ErrInvalidJobID)
	if err != nil {
		return nil, err
	}
	return job.InventoryUsed(ctx, s.db, t, id)
}

func (s *Service) Consume(ctx context.Context, tx *gorm.DB, items []domain.UsageItem, opts domain.ConsumeOptions) ([]job.UsageEntry, error) {
	log := logger.WithContext(ctx, s.log)
	repo := s.repo.WithTrx(tx)
	now := s.clock.Now()

	entries := make([]job.UsageEntry, 0, len(items))
	for _, line := range items {
		if line.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		entry := job.UsageEntry{
			InventoryID:  strings.TrimSpace(line.InventoryID),
			ItemName:     strings.TrimSpace(line.ItemName),
			Unit:         strings.TrimSpace(line.Unit),
			UsedQuantity: line.Quantity,
			Timestamp:    now,
		}

		stock, err := s.findStock(ctx, repo, line.InventoryID)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			if !opts.SkipMissing {
				return nil, domain.ErrNotFound
			}
			log.Warn("inventory item missing, stock not decremented", zap.String("inventory_id", entry.InventoryID))
			entries = append(entries, entry)
			continue
		}

		err = repo.Update(ctx, stock.ID, map[string]any{
			"quantity":   gorm.Expr(floorAtZero, line.Quantity, line.Quantity),
			"updated_at": now,
		})
		if err != nil {
			return nil, err
		}

		stock.Quantity -= line.Quantity
		if stock.Quantity < 0 {
			stock.Quantity = 0
		}
		if stock.BelowReorderLevel() {
			log.Warn("inventory at reorder level",
				zap.String("inventory_id", stock.ID),
				zap.String("item_name", stock.ItemName),
				zap.Int("quantity", stock.Quantity),
			)
		}

		if entry.ItemName == "" {
			entry.ItemName = stock.ItemName
		}
		if entry.Unit == "" {
			entry.Unit = nullable.Value(stock.Unit)
		}
		entry.InventoryID = stock.ID
		entries = append(entries, entry)
	}
	return entries, nil
}

// findStock returns nil when the id is malformed or unknown.
func (s *Service) findStock(ctx context.Context, repo repository.Repository[domain.Item], raw string) (*domain.Item, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil
	}
	return repo.FindByID(ctx, id.String())
}

func (s *Service) record(ctx context.Context, action string, jobType job.Type, jobID string, metadata map[string]any) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, activitydomain.Entry{
		Action:     action,
		EntityType: string(jobType),
		EntityID:   jobID,
		Message:    "inventory usage applied",
		Metadata:   metadata,
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

func validateFields(f domain.Fields) error {
	for _, v := range []*int{f.Quantity, f.MinimumQuantity, f.ReorderLevel} {
		if v != nil && *v < 0 {
			return domain.ErrInvalidQuantity
		}
	}
	for _, v := range []*float64{f.CostPrice, f.SellingPrice} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return domain.ErrInvalidPrice
		}
	}
	return nil
}

func parseUUID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}
