package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Document, error)
	FindByPath(ctx context.Context, db *gorm.DB, path string) (*Document, error)
	ListByJob(ctx context.Context, db *gorm.DB, jobType, jobID string) ([]*Document, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
