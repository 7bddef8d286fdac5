package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/fiberafrica/missioncontrol/internal/staff/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Staff{}))

	clk := clock.NewFakeClock(time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC))
	return New(Params{DB: db, Log: zap.NewNop(), Clock: clk, Repo: repository.Provide()}), db, clk
}

func seed(t *testing.T, db *gorm.DB, first, role string) domain.Staff {
	t.Helper()
	authID := uuid.NewString()
	s := domain.Staff{
		ID:         uuid.NewString(),
		AuthUserID: &authID,
		FirstName:  first,
		Surname:    "Dlamini",
		Role:       role,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func TestLookups(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()
	tech := seed(t, db, "Ayanda", domain.RoleTechnician)
	seed(t, db, "Zola", domain.RoleAdmin)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	techs, err := svc.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, tech.ID, techs[0].ID)

	byAuth, err := svc.GetByAuthUserID(ctx, *tech.AuthUserID)
	require.NoError(t, err)
	assert.Equal(t, tech.ID, byAuth.ID)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateLocation(t *testing.T) {
	svc, db, clk := setup(t)
	ctx := context.Background()
	tech := seed(t, db, "Ayanda", domain.RoleTechnician)
	seed(t, db, "Zola", domain.RoleTechnician)

	loc, err := svc.UpdateLocation(ctx, tech.ID, -33.92, 18.42)
	require.NoError(t, err)
	assert.Equal(t, -33.92, *loc.Latitude)
	require.NotNil(t, loc.LocationUpdatedAt)
	assert.True(t, loc.LocationUpdatedAt.Equal(clk.Now()))

	located, err := svc.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, tech.ID, located[0].ID)

	_, err = svc.UpdateLocation(ctx, tech.ID, 91, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLatitude)
	_, err = svc.UpdateLocation(ctx, tech.ID, 0, -181)
	assert.ErrorIs(t, err, domain.ErrInvalidLongitude)
	_, err = svc.UpdateLocation(ctx, uuid.NewString(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
