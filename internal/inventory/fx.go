package inventory

import (
	"github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"github.com/fiberafrica/missioncontrol/internal/inventory/service"
	"github.com/fiberafrica/missioncontrol/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.ProvideStore[domain.Item]),
	fx.Provide(service.New),
)
