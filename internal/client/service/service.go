package service

import (
	"context"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
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
		log:   p.Log.Named("client.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.Client{}, domain.ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return domain.Client{}, domain.ErrInvalidLastName
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:          uuid.NewString(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: nullable.String(req.PhoneNumber),
		Address:     nullable.String(req.Address),
		CompanyName: nullable.String(req.CompanyName),
		Notes:       nullable.String(req.Notes),
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}

	s.log.Info("client created", zap.String("client_id", client.ID))
	return client, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	values := map[string]any{}
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidFirstName
		}
		values["first_name"] = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidLastName
		}
		values["last_name"] = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !validEmail(email) {
			return domain.Client{}, domain.ErrInvalidEmail
		}
		values["email"] = email
	}
	if req.PhoneNumber != nil {
		values["phone_number"] = nullable.Column(nullable.String(req.PhoneNumber))
	}
	if req.Address != nil {
		values["address"] = nullable.Column(nullable.String(req.Address))
	}
	if req.CompanyName != nil {
		values["company_name"] = nullable.Column(nullable.String(req.CompanyName))
	}
	if req.Notes != nil {
		values["notes"] = nullable.Column(nullable.String(req.Notes))
	}
	if req.IsActive != nil {
		values["is_active"] = *req.IsActive
	}
	if len(values) == 0 {
		return domain.Client{}, domain.ErrEmptyUpdate
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if existing == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	values["updated_at"] = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, id, values); err != nil {
		return domain.Client{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) DisplayName(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", nil
	}
	return item.DisplayName(), nil
}

func parseID(value string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return id.String(), nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
