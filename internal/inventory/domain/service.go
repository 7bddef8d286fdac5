package domain

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/job"
	"gorm.io/gorm"
)

// Fields is shared by create and update. Nil means "not provided"; an empty
// string clears a text column.
type Fields struct {
	ItemName        *string  `json:"item_name"`
	ItemCode        *string  `json:"item_code"`
	Description     *string  `json:"description"`
	Quantity        *int     `json:"quantity"`
	Unit            *string  `json:"unit"`
	MinimumQuantity *int     `json:"minimum_quantity"`
	ReorderLevel    *int     `json:"reorder_level"`
	Category        *string  `json:"category"`
	SupplierName    *string  `json:"supplier_name"`
	SupplierContact *string  `json:"supplier_contact"`
	Location        *string  `json:"location"`
	CostPrice       *float64 `json:"cost_price"`
	SellingPrice    *float64 `json:"selling_price"`
}

// UsageItem is one line of consumed stock.
type UsageItem struct {
	InventoryID string `json:"inventory_id"`
	Quantity    int    `json:"quantity"`
	ItemName    string `json:"item_name,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

type ApplyUsageRequest struct {
	JobType string      `json:"jobType"`
	JobID   string      `json:"jobId"`
	Items   []UsageItem `json:"items"`
	Note    string      `json:"note,omitempty"`
}

type UsageResult struct {
	JobType       job.Type         `json:"job_type"`
	JobID         string           `json:"job_id"`
	Items         []job.UsageEntry `json:"items"`
	InventoryUsed []job.UsageEntry `json:"inventory_used"`
}

// ConsumeOptions tunes Consume for callers replaying already-approved stock.
type ConsumeOptions struct {
	// SkipMissing ignores items that no longer exist instead of failing.
	SkipMissing bool
}

type Service interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, fields Fields) (Item, error)
	Update(ctx context.Context, id string, fields Fields) (Item, error)
	Delete(ctx context.Context, id string) error

	// ApplyUsage decrements stock and appends the usage to the job ledger in
	// one transaction.
	ApplyUsage(ctx context.Context, req ApplyUsageRequest) (UsageResult, error)
	// JobUsage returns the inventory_used ledger of a job.
	JobUsage(ctx context.Context, jobType string, jobID string) ([]job.UsageEntry, error)
	// Consume decrements stock inside tx, flooring each quantity at zero.
	Consume(ctx context.Context, tx *gorm.DB, items []UsageItem, opts ConsumeOptions) ([]job.UsageEntry, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidItemName    = errors.New("invalid_item_name")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidJobID       = errors.New("invalid_job_id")
	ErrInvalidInventoryID = errors.New("invalid_inventory_id")
	ErrEmptyUsage         = errors.New("invalid_items")
	ErrEmptyUpdate        = errors.New("invalid_update")
	ErrNotFound           = errors.New("not_found")
)
