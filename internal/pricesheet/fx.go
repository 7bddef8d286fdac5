package pricesheet

import (
	"github.com/fiberafrica/missioncontrol/internal/pricesheet/repository"
	"github.com/fiberafrica/missioncontrol/internal/pricesheet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricesheet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
