package email

import (
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

// NewFromConfig returns the SMTP provider, or a no-op when no SMTP host is set.
func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	host := strings.TrimSpace(cfg.Email.SMTPHost)
	if host == "" {
		log.Warn("smtp host not configured, outgoing email disabled")
		return &NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     host,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.SMTPFrom,
		Cc:       cfg.Email.AccessTeamTo,
	})
}
