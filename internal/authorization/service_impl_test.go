package authorization

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer}), db
}

func TestRolePermissions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		role    string
		object  string
		action  string
		allowed bool
	}{
		{"super_admin", ObjectInventoryRequest, ActionApprove, true},
		{"super_admin", ObjectPriceSheet, ActionDelete, true},
		{"admin", ObjectInventoryRequest, ActionApprove, false},
		{"admin", ObjectInventoryRequest, ActionView, true},
		{"admin", ObjectOrder, ActionDelete, true},
		{"admin", ObjectCosts, ActionExport, true},
		{"admin", ObjectFleet, ActionView, true},
		{"manager", ObjectOrder, ActionView, true},
		{"manager", ObjectCosts, ActionView, true},
		{"manager", ObjectFleet, ActionView, true},
		{"manager", ObjectLog, ActionView, true},
		{"manager", ObjectOrder, ActionUpdate, false},
		{"manager", ObjectInventory, ActionView, false},
		{"technician", ObjectOrder, ActionViewOwn, true},
		{"technician", ObjectOrder, ActionView, false},
		{"technician", ObjectCosts, ActionView, false},
	}
	for _, tc := range cases {
		err := svc.Authorize(ctx, tc.role, tc.object, tc.action)
		if tc.allowed {
			assert.NoError(t, err, "%s %s %s", tc.role, tc.object, tc.action)
		} else {
			assert.ErrorIs(t, err, ErrForbidden, "%s %s %s", tc.role, tc.object, tc.action)
		}
	}
}

func TestAuthorizeValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "authenticated", ObjectOrder, ActionView), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, "admin", " ", ActionView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, "admin", ObjectOrder, ""), ErrInvalidAction)
}

func TestSeedIsIdempotent(t *testing.T) {
	_, db := newService(t)

	var before int64
	require.NoError(t, db.Table("casbin_rule").Count(&before).Error)

	_, err := NewEnforcer(db)
	require.NoError(t, err)

	var after int64
	require.NoError(t, db.Table("casbin_rule").Count(&after).Error)
	assert.Equal(t, before, after)
}
