package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/fiberafrica/missioncontrol/pkg/db/option"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type vehicle struct {
	ID           string `gorm:"primaryKey"`
	Registration string
	Active       bool
}

func setupStore(t *testing.T) Repository[vehicle] {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&vehicle{}))
	return ProvideStore[vehicle](db)
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	a := &vehicle{ID: "a", Registration: "CA 123", Active: true}
	b := &vehicle{ID: "b", Registration: "GP 456", Active: true}
	require.NoError(t, store.Create(ctx, a))
	require.NoError(t, store.Create(ctx, b))

	found, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CA 123", found.Registration)

	missing, err := store.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Update(ctx, b.ID, map[string]any{"registration": "GP 789"}))
	list, err := store.Find(ctx, &vehicle{}, option.OrderBy("id", true))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "GP 789", list[0].Registration)

	count, err := store.Count(ctx, &vehicle{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, store.Delete(ctx, a.ID))
	one, err := store.FindOne(ctx, &vehicle{}, option.Where("registration LIKE ?", "CA%"))
	require.NoError(t, err)
	assert.Nil(t, one)
}
