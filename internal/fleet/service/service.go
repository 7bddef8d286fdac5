package service

import (
	"context"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	"github.com/fiberafrica/missioncontrol/pkg/db/option"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/fiberafrica/missioncontrol/pkg/repository"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Repo  repository.Repository[domain.Vehicle]
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	repo  repository.Repository[domain.Vehicle]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("fleet.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Vehicle, error) {
	items, err := s.repo.Find(ctx, &domain.Vehicle{}, option.OrderBy("registration", false))
	if err != nil {
		return nil, err
	}
	vehicles := make([]domain.Vehicle, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		vehicles = append(vehicles, *item)
	}
	return vehicles, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Vehicle, error) {
	id, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Vehicle{}, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if item == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateVehicleRequest) (domain.Vehicle, error) {
	registration, err := validRegistration(req.Registration)
	if err != nil {
		return domain.Vehicle{}, err
	}
	vin, err := validVIN(req.VIN)
	if err != nil {
		return domain.Vehicle{}, err
	}
	technicianID, err := optionalID(req.TechnicianID)
	if err != nil {
		return domain.Vehicle{}, err
	}

	now := s.clock.Now()
	vehicle := domain.Vehicle{
		ID:           uuid.NewString(),
		Registration: registration,
		Make:         nullable.String(req.Make),
		Model:        nullable.String(req.Model),
		VIN:          vin,
		VehicleType:  nullable.String(req.VehicleType),
		Technician:   nullable.String(req.Technician),
		TechnicianID: technicianID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, &vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	s.log.Info("vehicle created", zap.String("vehicle_id", vehicle.ID), zap.String("registration", registration))
	return vehicle, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateVehicleRequest) (domain.Vehicle, error) {
	id, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Vehicle{}, err
	}

	values := map[string]any{}
	if req.Registration != nil {
		registration, err := validRegistration(*req.Registration)
		if err != nil {
			return domain.Vehicle{}, err
		}
		values["registration"] = registration
	}
	if req.VIN != nil {
		vin, err := validVIN(req.VIN)
		if err != nil {
			return domain.Vehicle{}, err
		}
		values["vin"] = nullable.Column(vin)
	}
	if req.TechnicianID != nil {
		technicianID, err := optionalID(req.TechnicianID)
		if err != nil {
			return domain.Vehicle{}, err
		}
		values["technician_id"] = nullable.Column(technicianID)
	}
	for column, v := range map[string]*string{
		"make":         req.Make,
		"model":        req.Model,
		"vehicle_type": req.VehicleType,
		"technician":   req.Technician,
	} {
		if v != nil {
			values[column] = nullable.Column(nullable.String(v))
		}
	}
	if len(values) == 0 {
		return domain.Vehicle{}, domain.ErrEmptyUpdate
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if existing == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}

	values["updated_at"] = s.clock.Now()
	if err := s.repo.Update(ctx, id, values); err != nil {
		return domain.Vehicle{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, vehicle.ID); err != nil {
		return err
	}
	s.log.Info("vehicle deleted", zap.String("vehicle_id", vehicle.ID))
	return nil
}

func validRegistration(raw string) (string, error) {
	registration := strings.TrimSpace(raw)
	if registration == "" || len(registration) > domain.MaxRegistrationLength {
		return "", domain.ErrInvalidRegistration
	}
	return registration, nil
}

func validVIN(raw *string) (*string, error) {
	vin := nullable.String(raw)
	if vin != nil && len(*vin) > domain.MaxVINLength {
		return nil, domain.ErrInvalidVIN
	}
	return vin, nil
}

func optionalID(raw *string) (*string, error) {
	value := nullable.String(raw)
	if value == nil {
		return nil, nil
	}
	id, err := parseID(*value, domain.ErrInvalidTechnicianID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}
