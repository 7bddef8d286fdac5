package activitylog

import (
	"github.com/fiberafrica/missioncontrol/internal/activitylog/repository"
	"github.com/fiberafrica/missioncontrol/internal/activitylog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activitylog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
