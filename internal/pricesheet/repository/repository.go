package repository

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLatest(ctx context.Context, db *gorm.DB, clientID string, orderTypes []string) (*domain.ServiceCost, error) {
	var row domain.ServiceCost
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("order_type IN ?", orderTypes).
		Order("updated_at desc").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.ServiceCost, error) {
	var row domain.ServiceCost
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID string) ([]*domain.ServiceCost, error) {
	var rows []*domain.ServiceCost
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("updated_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, row *domain.ServiceCost) error {
	return db.WithContext(ctx).Create(row).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, values map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.ServiceCost{}).
		Where("id = ?", id).
		Updates(values).Error
}
