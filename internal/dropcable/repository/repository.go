package repository

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).Take(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID string) ([]*domain.ClientOrder, error) {
	var orders []*domain.ClientOrder
	err := db.WithContext(ctx).
		Table("drop_cable").
		Select("drop_cable.*, clients.company_name AS client_company_name").
		Joins("LEFT JOIN clients ON clients.id = drop_cable.client_id").
		Where("drop_cable.client_id = ?", clientID).
		Order("drop_cable.created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListByTechnician(ctx context.Context, db *gorm.DB, technicianID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := db.WithContext(ctx).
		Where("technician_id = ?", technicianID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListForClientAndWeek(ctx context.Context, db *gorm.DB, clientID, week string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("week = ?", week).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, values map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
