package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// FindLatest returns the most recently updated row for the client whose
	// order type is any of orderTypes, or nil.
	FindLatest(ctx context.Context, db *gorm.DB, clientID string, orderTypes []string) (*ServiceCost, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*ServiceCost, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID string) ([]*ServiceCost, error)
	Insert(ctx context.Context, db *gorm.DB, row *ServiceCost) error
	Update(ctx context.Context, db *gorm.DB, id string, values map[string]any) error
}
