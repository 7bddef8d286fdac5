package service

import (
	"context"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/activitylog/masking"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	obscontext "github.com/fiberafrica/missioncontrol/internal/observability/context"
	"github.com/fiberafrica/missioncontrol/pkg/telemetry/correlation"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("activitylog.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	entityType := strings.TrimSpace(entry.EntityType)
	if entityType == "" {
		entityType = "unknown"
	}

	actorType, actorID := resolveActor(ctx)

	payload := masking.MaskSensitive(entry.Metadata)
	if payload == nil {
		payload = map[string]any{}
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		payload["request_id"] = requestID
	}
	if correlationID := correlation.ExtractCorrelationID(ctx); correlationID != "" {
		payload["correlation_id"] = correlationID
	}

	row := domain.Log{
		ID:         uuid.NewString(),
		ActorType:  actorType,
		ActorID:    normalizePointer(actorID),
		Action:     action,
		EntityType: entityType,
		EntityID:   normalizePointer(entry.EntityID),
		Message:    strings.TrimSpace(entry.Message),
		Metadata:   datatypes.JSONMap(payload),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		s.log.Warn("failed to write activity log", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Log, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}

	items, err := s.repo.List(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}

	logs := make([]domain.Log, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		logs = append(logs, *item)
	}
	return logs, nil
}

func resolveActor(ctx context.Context) (string, string) {
	actorType, actorID := obscontext.ActorFromContext(ctx)
	if actorType == "" {
		return string(domain.ActorTypeSystem), ""
	}
	return actorType, actorID
}

func normalizePointer(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
