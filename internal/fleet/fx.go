package fleet

import (
	"github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	"github.com/fiberafrica/missioncontrol/internal/fleet/service"
	"github.com/fiberafrica/missioncontrol/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("fleet.service",
	fx.Provide(repository.ProvideStore[domain.Vehicle]),
	fx.Provide(service.New),
)
