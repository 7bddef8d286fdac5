package main

import (
	"github.com/fiberafrica/missioncontrol/internal/activitylog"
	"github.com/fiberafrica/missioncontrol/internal/auth"
	"github.com/fiberafrica/missioncontrol/internal/authorization"
	"github.com/fiberafrica/missioncontrol/internal/client"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/fiberafrica/missioncontrol/internal/document"
	"github.com/fiberafrica/missioncontrol/internal/dropcable"
	"github.com/fiberafrica/missioncontrol/internal/fleet"
	"github.com/fiberafrica/missioncontrol/internal/inventory"
	"github.com/fiberafrica/missioncontrol/internal/inventoryrequest"
	"github.com/fiberafrica/missioncontrol/internal/linkbuild"
	"github.com/fiberafrica/missioncontrol/internal/migration"
	"github.com/fiberafrica/missioncontrol/internal/observability"
	"github.com/fiberafrica/missioncontrol/internal/pricesheet"
	"github.com/fiberafrica/missioncontrol/internal/providers"
	"github.com/fiberafrica/missioncontrol/internal/ratelimit"
	"github.com/fiberafrica/missioncontrol/internal/server"
	"github.com/fiberafrica/missioncontrol/internal/staff"
	"github.com/fiberafrica/missioncontrol/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		migration.Module,
		providers.Module,

		// Access control
		auth.Module,
		authorization.Module,
		ratelimit.Module,

		// Domains
		activitylog.Module,
		client.Module,
		staff.Module,
		pricesheet.Module,
		dropcable.Module,
		linkbuild.Module,
		fleet.Module,
		inventory.Module,
		inventoryrequest.Module,
		document.Module,

		server.Module,
	)
	app.Run()
}
