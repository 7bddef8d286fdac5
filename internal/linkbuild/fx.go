package linkbuild

import (
	"github.com/fiberafrica/missioncontrol/internal/linkbuild/repository"
	"github.com/fiberafrica/missioncontrol/internal/linkbuild/service"
	"go.uber.org/fx"
)

var Module = fx.Module("linkbuild.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
