package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Staff, error)
	FindByAuthUserID(ctx context.Context, db *gorm.DB, authUserID string) (*Staff, error)
	List(ctx context.Context, db *gorm.DB, role string) ([]*Staff, error)
	ListLocated(ctx context.Context, db *gorm.DB) ([]*Staff, error)
	UpdateLocation(ctx context.Context, db *gorm.DB, id string, latitude, longitude float64, at time.Time) error
}
