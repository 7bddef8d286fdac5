package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/activitylog/repository"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	obscontext "github.com/fiberafrica/missioncontrol/internal/observability/context"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Log{}))

	clk := clock.NewFakeClock(time.Date(2025, 5, 5, 7, 0, 0, 0, time.UTC))
	return NewService(Params{DB: db, Log: zap.NewNop(), Clock: clk, Repo: repository.Provide()}), clk
}

func TestRecordUsesActorFromContext(t *testing.T) {
	svc, _ := setupService(t)
	ctx := obscontext.WithActor(context.Background(), "user", "u-1")
	ctx = obscontext.WithRequestID(ctx, "req-9")

	require.NoError(t, svc.Record(ctx, domain.Entry{
		Action:     "drop_cable.update",
		EntityType: "drop_cable",
		EntityID:   "abc",
		Message:    "Order updated",
		Metadata:   map[string]any{"end_client_contact_email": "jane@example.com"},
	}))

	logs, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "user", logs[0].ActorType)
	assert.Equal(t, "u-1", *logs[0].ActorID)
	assert.Equal(t, "req-9", logs[0].Metadata["request_id"])
	assert.Equal(t, "****.com", logs[0].Metadata["end_client_contact_email"])
}

func TestRecordDefaultsToSystemActor(t *testing.T) {
	svc, _ := setupService(t)
	require.NoError(t, svc.Record(context.Background(), domain.Entry{Action: "inventory.approve"}))

	logs, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "system", logs[0].ActorType)
	assert.Equal(t, "unknown", logs[0].EntityType)
	assert.Nil(t, logs[0].ActorID)

	assert.ErrorIs(t, svc.Record(context.Background(), domain.Entry{}), domain.ErrInvalidAction)
}

func TestListNewestFirstWithLimit(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Record(ctx, domain.Entry{Action: fmt.Sprintf("action.%d", i)}))
		clk.Advance(time.Minute)
	}

	logs, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "action.2", logs[0].Action)
	assert.Equal(t, "action.1", logs[1].Action)

	_, err = svc.List(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}
