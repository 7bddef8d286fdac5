package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Client, error)
	List(ctx context.Context, db *gorm.DB) ([]*Client, error)
	Update(ctx context.Context, db *gorm.DB, id string, values map[string]any) error
}
