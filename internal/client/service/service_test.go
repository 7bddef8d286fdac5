package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/fiberafrica/missioncontrol/internal/client/repository"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clk,
		Repo:  repository.Provide(),
	}), clk
}

func TestCreateAndDisplayName(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	person, err := svc.Create(ctx, domain.CreateClientRequest{
		FirstName:   " Thandi ",
		LastName:    "Mokoena",
		Email:       "thandi@example.com",
		CompanyName: nullable.Ptr("  "),
	})
	require.NoError(t, err)
	assert.True(t, person.IsActive)
	assert.Nil(t, person.CompanyName)

	name, err := svc.DisplayName(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thandi Mokoena", name)

	company, err := svc.Create(ctx, domain.CreateClientRequest{
		FirstName:   "Ops",
		LastName:    "Desk",
		Email:       "ops@maziv.example",
		CompanyName: nullable.Ptr("Maziv Fibre"),
	})
	require.NoError(t, err)

	name, err = svc.DisplayName(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maziv Fibre", name)

	name, err = svc.DisplayName(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateClientRequest{LastName: "x", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrInvalidFirstName)

	_, err = svc.Create(ctx, domain.CreateClientRequest{FirstName: "x", LastName: "y", Email: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, clk := setupService(t)

	first, err := svc.Create(ctx, domain.CreateClientRequest{FirstName: "A", LastName: "A", Email: "a@a.io"})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	second, err := svc.Create(ctx, domain.CreateClientRequest{FirstName: "B", LastName: "B", Email: "b@b.io"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, clk := setupService(t)

	created, err := svc.Create(ctx, domain.CreateClientRequest{FirstName: "A", LastName: "B", Email: "a@b.io"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, domain.UpdateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

	_, err = svc.Update(ctx, uuid.NewString(), domain.UpdateClientRequest{FirstName: nullable.Ptr("C")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, "not-a-uuid", domain.UpdateClientRequest{FirstName: nullable.Ptr("C")})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	clk.Advance(time.Minute)
	updated, err := svc.Update(ctx, created.ID, domain.UpdateClientRequest{
		CompanyName: nullable.Ptr("Openserve"),
		IsActive:    nullable.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Openserve", *updated.CompanyName)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}
