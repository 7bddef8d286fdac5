package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, req *Request) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Detail, error)
	// FindPending returns nil when the request is missing or already reviewed.
	FindPending(ctx context.Context, db *gorm.DB, id string) (*Request, error)
	List(ctx context.Context, db *gorm.DB, status Status) ([]*Detail, error)
	ListByJob(ctx context.Context, db *gorm.DB, jobType, jobID string) ([]*Detail, error)
	ListByTechnician(ctx context.Context, db *gorm.DB, technicianID string) ([]*Detail, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status Status) (int64, error)
	// Review moves a pending request to status and reports whether a row changed.
	Review(ctx context.Context, db *gorm.DB, id string, status Status, reviewer string, at time.Time, reason *string) (bool, error)
}
