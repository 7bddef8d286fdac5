package job

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type dropCableRow struct {
	ID            string `gorm:"primaryKey"`
	InventoryUsed UsageLedger
}

func (dropCableRow) TableName() string { return "drop_cable" }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dropCableRow{}))
	return db
}

func TestParseType(t *testing.T) {
	got, err := ParseType("Drop-Cable")
	require.NoError(t, err)
	assert.Equal(t, TypeDropCable, got)

	_, err = ParseType("maintenance")
	assert.ErrorIs(t, err, ErrInvalidJobType)
}

func TestAppendInventoryUsed(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	require.NoError(t, db.Create(&dropCableRow{ID: "job-1"}).Error)

	ts := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	_, err := AppendInventoryUsed(ctx, db, TypeDropCable, "job-1", []UsageEntry{
		{InventoryID: "inv-1", ItemName: "Drop cable 2F", Unit: "m", UsedQuantity: 120, Timestamp: ts},
	})
	require.NoError(t, err)

	ledger, err := AppendInventoryUsed(ctx, db, TypeDropCable, "job-1", []UsageEntry{
		{InventoryID: "inv-2", UsedQuantity: 2, Timestamp: ts},
	})
	require.NoError(t, err)
	require.Len(t, ledger, 2)

	stored, err := InventoryUsed(ctx, db, TypeDropCable, "job-1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "inv-1", stored[0].InventoryID)
	assert.Equal(t, 120, stored[0].UsedQuantity)
	assert.Equal(t, "inv-2", stored[1].InventoryID)

	_, err = InventoryUsed(ctx, db, TypeDropCable, "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
