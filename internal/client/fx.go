package client

import (
	"github.com/fiberafrica/missioncontrol/internal/client/repository"
	"github.com/fiberafrica/missioncontrol/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
