package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	activityrepo "github.com/fiberafrica/missioncontrol/internal/activitylog/repository"
	activityservice "github.com/fiberafrica/missioncontrol/internal/activitylog/service"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	dropdomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/fiberafrica/missioncontrol/pkg/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
}

func setup(t *testing.T) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Item{}, &dropdomain.Order{}, &activitydomain.Log{}))

	clk := clock.NewFakeClock(time.Date(2025, 3, 3, 7, 30, 0, 0, time.UTC))
	log := zap.NewNop()
	activity := activityservice.NewService(activityservice.Params{DB: db, Log: log, Clock: clk, Repo: activityrepo.Provide()})

	svc := New(Params{
		DB:       db,
		Log:      log,
		Clock:    clk,
		Repo:     repository.ProvideStore[domain.Item](db),
		Activity: activity,
	})
	return fixture{svc: svc, db: db, clock: clk}
}

func seedOrder(t *testing.T, db *gorm.DB, now time.Time) string {
	t.Helper()
	order := dropdomain.Order{
		ID:            uuid.NewString(),
		CircuitNumber: "FA-100",
		SiteBName:     "Observatory",
		Status:        nullable.Ptr("survey_required"),
		Notes:         job.Notes{},
		InventoryUsed: job.UsageLedger{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func TestItemLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cable, err := f.svc.Create(ctx, domain.Fields{
		ItemName:     nullable.Ptr(" Drop cable 2F "),
		Quantity:     nullable.Ptr(500),
		Unit:         nullable.Ptr("m"),
		ReorderLevel: nullable.Ptr(100),
		CostPrice:    nullable.Ptr(3.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Drop cable 2F", cable.ItemName)
	assert.Equal(t, 500, cable.Quantity)

	_, err = f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Apoxy connector")})
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Apoxy connector", list[0].ItemName)
	assert.Equal(t, 0, list[0].Quantity)

	updated, err := f.svc.Update(ctx, cable.ID, domain.Fields{
		Quantity: nullable.Ptr(450),
		Unit:     nullable.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, 450, updated.Quantity)
	assert.Nil(t, updated.Unit)
	assert.Equal(t, "Drop cable 2F", updated.ItemName)

	require.NoError(t, f.svc.Delete(ctx, cable.ID))
	_, err = f.svc.Get(ctx, cable.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidItemName)

	_, err = f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Splitter"), Quantity: nullable.Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Splitter"), SellingPrice: nullable.Ptr(-0.01)})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	item, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Splitter")})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, item.ID, domain.Fields{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

	_, err = f.svc.Update(ctx, uuid.NewString(), domain.Fields{Quantity: nullable.Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestApplyUsage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	orderID := seedOrder(t, f.db, f.clock.Now())

	cable, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Drop cable"), Quantity: nullable.Ptr(120), Unit: nullable.Ptr("m")})
	require.NoError(t, err)
	clamps, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("P-clamp"), Quantity: nullable.Ptr(3)})
	require.NoError(t, err)

	result, err := f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{
		JobType: "drop-cable",
		JobID:   orderID,
		Items: []domain.UsageItem{
			{InventoryID: cable.ID, Quantity: 80},
			{InventoryID: clamps.ID, Quantity: 5, ItemName: "Clamp (small)"},
		},
		Note: "installed on site",
	})
	require.NoError(t, err)
	assert.Equal(t, job.TypeDropCable, result.JobType)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Drop cable", result.Items[0].ItemName)
	assert.Equal(t, "m", result.Items[0].Unit)
	assert.Equal(t, 80, result.Items[0].UsedQuantity)
	assert.Equal(t, "Clamp (small)", result.Items[1].ItemName)
	assert.Len(t, result.InventoryUsed, 2)

	cable, err = f.svc.Get(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, cable.Quantity)
	clamps, err = f.svc.Get(ctx, clamps.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, clamps.Quantity)

	f.clock.Advance(time.Hour)
	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{
		JobType: "drop_cable",
		JobID:   orderID,
		Items:   []domain.UsageItem{{InventoryID: cable.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	ledger, err := f.svc.JobUsage(ctx, "drop_cable", orderID)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	assert.Equal(t, 10, ledger[2].UsedQuantity)

	var logs int64
	require.NoError(t, f.db.Model(&activitydomain.Log{}).Where("action = ?", "inventory.usage_applied").Count(&logs).Error)
	assert.Equal(t, int64(2), logs)
}

func TestApplyUsageRollsBack(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	orderID := seedOrder(t, f.db, f.clock.Now())

	cable, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Drop cable"), Quantity: nullable.Ptr(100)})
	require.NoError(t, err)

	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{
		JobType: "drop_cable",
		JobID:   orderID,
		Items: []domain.UsageItem{
			{InventoryID: cable.ID, Quantity: 30},
			{InventoryID: uuid.NewString(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cable, err = f.svc.Get(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, cable.Quantity)

	ledger, err := f.svc.JobUsage(ctx, "drop_cable", orderID)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestApplyUsageValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	orderID := seedOrder(t, f.db, f.clock.Now())
	item := domain.UsageItem{InventoryID: uuid.NewString(), Quantity: 1}

	_, err := f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{JobType: "maintenance", JobID: orderID, Items: []domain.UsageItem{item}})
	assert.ErrorIs(t, err, job.ErrInvalidJobType)

	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{JobType: "drop_cable", JobID: "x", Items: []domain.UsageItem{item}})
	assert.ErrorIs(t, err, domain.ErrInvalidJobID)

	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{JobType: "drop_cable", JobID: orderID})
	assert.ErrorIs(t, err, domain.ErrEmptyUsage)

	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{JobType: "drop_cable", JobID: orderID, Items: []domain.UsageItem{{InventoryID: item.InventoryID, Quantity: -2}}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.ApplyUsage(ctx, domain.ApplyUsageRequest{JobType: "link_build", JobID: uuid.NewString(), Items: []domain.UsageItem{item}})
	assert.Error(t, err)
}

func TestConsumeSkipsMissing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cable, err := f.svc.Create(ctx, domain.Fields{ItemName: nullable.Ptr("Drop cable"), Quantity: nullable.Ptr(10)})
	require.NoError(t, err)
	missing := uuid.NewString()

	var entries []job.UsageEntry
	err = f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entries, err = f.svc.Consume(ctx, tx, []domain.UsageItem{
			{InventoryID: missing, Quantity: 4, ItemName: "Gone"},
			{InventoryID: cable.ID, Quantity: 4},
		}, domain.ConsumeOptions{SkipMissing: true})
		return err
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, missing, entries[0].InventoryID)
	assert.Equal(t, "Gone", entries[0].ItemName)

	cable, err = f.svc.Get(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, cable.Quantity)
}
