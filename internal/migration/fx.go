package migration

import (
	"strings"

	activitylogdomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/fiberafrica/missioncontrol/internal/config"
	documentdomain "github.com/fiberafrica/missioncontrol/internal/document/domain"
	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	fleetdomain "github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	inventoryrequestdomain "github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	pricesheetdomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

// Apply brings the schema up to date. Postgres uses the versioned SQL files;
// the other dialects are local and test setups and get gorm's AutoMigrate.
func Apply(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	log = log.Named("migration")
	if strings.EqualFold(strings.TrimSpace(cfg.DBType), "postgres") {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
		log.Info("schema migrations applied")
		return nil
	}

	if err := AutoMigrate(conn); err != nil {
		return err
	}
	log.Info("schema auto-migrated", zap.String("type", cfg.DBType))
	return nil
}

// AutoMigrate creates every table the service owns from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&clientdomain.Client{},
		&staffdomain.Staff{},
		&pricesheetdomain.ServiceCost{},
		&dropcabledomain.Order{},
		&linkbuilddomain.Order{},
		&fleetdomain.Vehicle{},
		&inventorydomain.Item{},
		&inventoryrequestdomain.Request{},
		&documentdomain.Document{},
		&activitylogdomain.Log{},
	)
}
