package inventoryrequest

import (
	"github.com/fiberafrica/missioncontrol/internal/inventoryrequest/repository"
	"github.com/fiberafrica/missioncontrol/internal/inventoryrequest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventoryrequest.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
