// Package job knows which tables hold field jobs and maintains the
// inventory_used ledger stored on each job row.
package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Type string

const (
	TypeDropCable Type = "drop_cable"
	TypeLinkBuild Type = "link_build"
)

var (
	ErrInvalidJobType = errors.New("invalid_job_type")
	ErrJobNotFound    = errors.New("job_not_found")
)

// UsageEntry records stock consumed on a job.
type UsageEntry struct {
	InventoryID  string    `json:"inventory_id"`
	ItemName     string    `json:"item_name,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	UsedQuantity int       `json:"used_quantity"`
	Timestamp    time.Time `json:"timestamp"`
}

// UsageLedger is the JSON column type for inventory_used.
type UsageLedger = datatypes.JSONSlice[UsageEntry]

// ParseType accepts hyphenated spellings ("drop-cable").
func ParseType(raw string) (Type, error) {
	normalized := Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	switch normalized {
	case TypeDropCable, TypeLinkBuild:
		return normalized, nil
	default:
		return "", ErrInvalidJobType
	}
}

// Table is the order table backing the job type.
func (t Type) Table() string {
	return string(t)
}

type usageRow struct {
	ID            string
	InventoryUsed UsageLedger
}

// InventoryUsed returns the usage ledger of a job.
func InventoryUsed(ctx context.Context, db *gorm.DB, jobType Type, jobID string) ([]UsageEntry, error) {
	var row usageRow
	err := db.WithContext(ctx).
		Table(jobType.Table()).
		Select("id, inventory_used").
		Where("id = ?", jobID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if row.InventoryUsed == nil {
		return []UsageEntry{}, nil
	}
	return row.InventoryUsed, nil
}

// AppendInventoryUsed appends entries to the job's ledger. Run it inside the
// transaction that also adjusts stock.
func AppendInventoryUsed(ctx context.Context, tx *gorm.DB, jobType Type, jobID string, entries []UsageEntry) ([]UsageEntry, error) {
	existing, err := InventoryUsed(ctx, tx, jobType, jobID)
	if err != nil {
		return nil, err
	}

	ledger := make(UsageLedger, 0, len(existing)+len(entries))
	ledger = append(ledger, existing...)
	ledger = append(ledger, entries...)

	err = tx.WithContext(ctx).
		Table(jobType.Table()).
		Where("id = ?", jobID).
		Update("inventory_used", ledger).Error
	if err != nil {
		return nil, err
	}
	return ledger, nil
}
