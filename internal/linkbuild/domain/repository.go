package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Order, error)
	List(ctx context.Context, db *gorm.DB) ([]*Order, error)
	ListByClientName(ctx context.Context, db *gorm.DB, clientName string) ([]*Order, error)
	ListByTechnicianName(ctx context.Context, db *gorm.DB, technicianName string) ([]*Order, error)
	ListByTechnicianID(ctx context.Context, db *gorm.DB, technicianID string) ([]*Order, error)
	ListForClientAndWeek(ctx context.Context, db *gorm.DB, clientID, week string) ([]*Order, error)
	Update(ctx context.Context, db *gorm.DB, id string, values map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id string) (bool, error)
}
