package service

import (
	"context"
	"strings"

	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityType = "inventory_request"

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Repo      domain.Repository
	Inventory inventorydomain.Service
	Activity  activitydomain.Service `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	repo      domain.Repository
	inventory inventorydomain.Service
	activity  activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("inventoryrequest.service"),
		clock:     p.Clock,
		repo:      p.Repo,
		inventory: p.Inventory,
		activity:  p.Activity,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Detail, error) {
	jobType, err := job.ParseType(req.JobType)
	if err != nil {
		return domain.Detail{}, err
	}
	jobID, err := parseUUID(req.JobID, domain.ErrInvalidJobID)
	if err != nil {
		return domain.Detail{}, err
	}
	technicianID, err := parseUUID(req.TechnicianID, domain.ErrInvalidTechnicianID)
	if err != nil {
		return domain.Detail{}, err
	}
	if err := inventorydomain.ValidateUsage(req.Items); err != nil {
		return domain.Detail{}, err
	}
	if _, err := job.InventoryUsed(ctx, s.db, jobType, jobID); err != nil {
		return domain.Detail{}, err
	}

	items := make(domain.Items, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, inventorydomain.UsageItem{
			InventoryID: strings.TrimSpace(item.InventoryID),
			Quantity:    item.Quantity,
			ItemName:    strings.TrimSpace(item.ItemName),
			Unit:        strings.TrimSpace(item.Unit),
		})
	}

	row := domain.Request{
		ID:           uuid.NewString(),
		JobID:        jobID,
		JobType:      string(jobType),
		TechnicianID: technicianID,
		Items:        items,
		Status:       domain.StatusPending,
		RequestedAt:  s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		return domain.Detail{}, err
	}

	logger.WithContext(ctx, s.log).Info("inventory request created",
		zap.String("request_id", row.ID),
		zap.String("job_type", row.JobType),
		zap.String("job_id", row.JobID),
		zap.Int("items", len(row.Items)),
	)
	return s.Get(ctx, row.ID)
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Detail, error) {
	filter := domain.Status(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	rows, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return deref(rows), nil
}

func (s *Service) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, s.db, domain.StatusPending)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Detail, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Detail{}, err
	}
	row, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Detail{}, err
	}
	if row == nil {
		return domain.Detail{}, domain.ErrNotFound
	}
	return *row, nil
}

func (s *Service) ListByJob(ctx context.Context, jobType, jobID string) ([]domain.Detail, error) {
	t, err := job.ParseType(jobType)
	if err != nil {
		return nil, err
	}
	id, err := parseUUID(jobID, domain.ErrInvalidJobID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByJob(ctx, s.db, string(t), id)
	if err != nil {
		return nil, err
	}
	return deref(rows), nil
}

func (s *Service) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Detail, error) {
	id, err := parseUUID(technicianID, domain.ErrInvalidTechnicianID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByTechnician(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return deref(rows), nil
}

func (s *Service) Approve(ctx context.Context, id string, reviewerID string) (domain.Detail, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Detail{}, err
	}
	reviewer, err := parseUUID(reviewerID, domain.ErrInvalidReviewerID)
	if err != nil {
		return domain.Detail{}, err
	}

	var approved *domain.Request
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.repo.FindPending(ctx, tx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotPending
		}
		jobType, err := job.ParseType(req.JobType)
		if err != nil {
			return err
		}

		entries, err := s.inventory.Consume(ctx, tx, req.Items, inventorydomain.ConsumeOptions{SkipMissing: true})
		if err != nil {
			return err
		}
		if _, err := job.AppendInventoryUsed(ctx, tx, jobType, req.JobID, entries); err != nil {
			return err
		}

		changed, err := s.repo.Review(ctx, tx, id, domain.StatusApproved, reviewer, s.clock.Now(), nil)
		if err != nil {
			return err
		}
		if !changed {
			return domain.ErrNotPending
		}
		approved = req
		return nil
	})
	if err != nil {
		return domain.Detail{}, err
	}

	s.record(ctx, "inventory_request.approved", id, "inventory request approved", map[string]any{
		"job_type": approved.JobType,
		"job_id":   approved.JobID,
		"items":    len(approved.Items),
	})
	return s.Get(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id string, reviewerID string, reason *string) (domain.Detail, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Detail{}, err
	}
	reviewer, err := parseUUID(reviewerID, domain.ErrInvalidReviewerID)
	if err != nil {
		return domain.Detail{}, err
	}

	changed, err := s.repo.Review(ctx, s.db, id, domain.StatusRejected, reviewer, s.clock.Now(), nullable.String(reason))
	if err != nil {
		return domain.Detail{}, err
	}
	if !changed {
		return domain.Detail{}, domain.ErrNotPending
	}

	s.record(ctx, "inventory_request.rejected", id, "inventory request rejected", map[string]any{
		"reason": nullable.Value(reason),
	})
	return s.Get(ctx, id)
}

func (s *Service) record(ctx context.Context, action, requestID, message string, metadata map[string]any) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, activitydomain.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   requestID,
		Message:    message,
		Metadata:   metadata,
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

func deref(rows []*domain.Detail) []domain.Detail {
	out := make([]domain.Detail, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			out = append(out, *row)
		}
	}
	return out
}

func parseUUID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}
