package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *Log) error
	List(ctx context.Context, db *gorm.DB, limit int) ([]*Log, error)
}
