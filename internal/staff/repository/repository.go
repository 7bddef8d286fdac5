package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Staff, error) {
	return r.take(db.WithContext(ctx).Where("id = ?", id))
}

func (r *repo) FindByAuthUserID(ctx context.Context, db *gorm.DB, authUserID string) (*domain.Staff, error) {
	return r.take(db.WithContext(ctx).Where("auth_user_id = ?", authUserID))
}

func (r *repo) take(q *gorm.DB) (*domain.Staff, error) {
	var staff domain.Staff
	if err := q.Take(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, role string) ([]*domain.Staff, error) {
	q := db.WithContext(ctx).Order("first_name asc, surname asc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var items []*domain.Staff
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListLocated(ctx context.Context, db *gorm.DB) ([]*domain.Staff, error) {
	var items []*domain.Staff
	err := db.WithContext(ctx).
		Where("latitude IS NOT NULL").
		Where("longitude IS NOT NULL").
		Order("location_updated_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateLocation(ctx context.Context, db *gorm.DB, id string, latitude, longitude float64, at time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Staff{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"latitude":            latitude,
			"longitude":           longitude,
			"location_updated_at": at,
			"updated_at":          at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
