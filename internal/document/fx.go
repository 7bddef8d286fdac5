package document

import (
	"github.com/fiberafrica/missioncontrol/internal/document/repository"
	"github.com/fiberafrica/missioncontrol/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
