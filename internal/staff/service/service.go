package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
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

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("staff.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Staff, error) {
	return s.list(ctx, "")
}

func (s *Service) ListTechnicians(ctx context.Context) ([]domain.Staff, error) {
	return s.list(ctx, domain.RoleTechnician)
}

func (s *Service) list(ctx context.Context, role string) ([]domain.Staff, error) {
	items, err := s.repo.List(ctx, s.db, role)
	if err != nil {
		return nil, err
	}
	staff := make([]domain.Staff, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		staff = append(staff, *item)
	}
	return staff, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Staff, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.Staff{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Staff{}, err
	}
	if item == nil {
		return domain.Staff{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) GetByAuthUserID(ctx context.Context, authUserID string) (domain.Staff, error) {
	authUserID, err := parseID(authUserID)
	if err != nil {
		return domain.Staff{}, err
	}
	item, err := s.repo.FindByAuthUserID(ctx, s.db, authUserID)
	if err != nil {
		return domain.Staff{}, err
	}
	if item == nil {
		return domain.Staff{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Locations(ctx context.Context) ([]domain.Location, error) {
	items, err := s.repo.ListLocated(ctx, s.db)
	if err != nil {
		return nil, err
	}
	locations := make([]domain.Location, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		locations = append(locations, toLocation(*item))
	}
	return locations, nil
}

func (s *Service) UpdateLocation(ctx context.Context, staffID string, latitude, longitude float64) (domain.Location, error) {
	staffID, err := parseID(staffID)
	if err != nil {
		return domain.Location{}, err
	}
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return domain.Location{}, domain.ErrInvalidLatitude
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return domain.Location{}, domain.ErrInvalidLongitude
	}

	now := s.clock.Now()
	if err := s.repo.UpdateLocation(ctx, s.db, staffID, latitude, longitude, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}

	s.log.Debug("staff location updated", zap.String("staff_id", staffID))
	item, err := s.Get(ctx, staffID)
	if err != nil {
		return domain.Location{}, err
	}
	return toLocation(item), nil
}

func toLocation(s domain.Staff) domain.Location {
	return domain.Location{
		ID:                s.ID,
		FirstName:         s.FirstName,
		Surname:           s.Surname,
		Role:              s.Role,
		Latitude:          s.Latitude,
		Longitude:         s.Longitude,
		LocationUpdatedAt: s.LocationUpdatedAt,
	}
}

func parseID(value string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return id.String(), nil
}
