package repository

import (
	"context"

	"github.com/fiberafrica/missioncontrol/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is the generic CRUD surface shared by the reference-data tables.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, id string, values map[string]any) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, query *T) (int64, error)
}
