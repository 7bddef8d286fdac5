package providers

import (
	"github.com/fiberafrica/missioncontrol/internal/providers/email"
	"github.com/fiberafrica/missioncontrol/internal/providers/pdf"
	"github.com/fiberafrica/missioncontrol/internal/providers/spreadsheet"
	"github.com/fiberafrica/missioncontrol/internal/providers/storage"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
	spreadsheet.Module,
	storage.Module,
)
