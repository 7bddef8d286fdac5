package dropcable

import (
	"github.com/fiberafrica/missioncontrol/internal/dropcable/repository"
	"github.com/fiberafrica/missioncontrol/internal/dropcable/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dropcable.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
