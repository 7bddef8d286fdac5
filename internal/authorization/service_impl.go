package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/auth"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	Activity activitydomain.Service `optional:"true"`
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	activity activitydomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		activity: p.Activity,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role string, object string, action string) error {
	role, ok := auth.ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject(role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, role, object, action)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) auditDenied(ctx context.Context, role string, object string, action string) {
	logger.WithContext(ctx, s.log).Warn("authorization denied",
		zap.String("role", role),
		zap.String("object", object),
		zap.String("action", action),
	)
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, activitydomain.Entry{
		Action:     "authorization.denied",
		EntityType: "authorization",
		EntityID:   object,
		Message:    "access denied",
		Metadata: map[string]any{
			"role":   role,
			"object": object,
			"action": action,
		},
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to record activity", zap.Error(err))
	}
}

func subject(role string) string {
	return "role:" + role
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	superAdmin := subject(auth.RoleSuperAdmin)
	admin := subject(auth.RoleAdmin)
	manager := subject(auth.RoleManager)
	technician := subject(auth.RoleTechnician)

	// Each role inherits everything granted to the role below it.
	groupings := [][]string{
		{superAdmin, admin},
		{admin, manager},
	}

	policies := [][]string{
		// Technician: own orders only.
		{technician, ObjectOrder, ActionViewOwn},

		// Manager: read access to operations.
		{manager, ObjectOrder, ActionView},
		{manager, ObjectOrder, ActionViewOwn},
		{manager, ObjectCosts, ActionView},
		{manager, ObjectFleet, ActionView},
		{manager, ObjectLog, ActionView},

		// Admin: everything except reviewing inventory requests.
		{admin, ObjectOrder, "*"},
		{admin, ObjectCosts, "*"},
		{admin, ObjectClient, "*"},
		{admin, ObjectPriceSheet, "*"},
		{admin, ObjectStaff, "*"},
		{admin, ObjectFleet, "*"},
		{admin, ObjectInventory, "*"},
		{admin, ObjectLog, "*"},
		{admin, ObjectDocument, "*"},
		{admin, ObjectInventoryRequest, ActionView},

		// Super admin: approval on top of admin.
		{superAdmin, "*", "*"},
	}

	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}
