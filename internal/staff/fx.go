package staff

import (
	"github.com/fiberafrica/missioncontrol/internal/staff/repository"
	"github.com/fiberafrica/missioncontrol/internal/staff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("staff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
