package observability

import (
	"testing"

	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OTEL_SAMPLING_RATIO", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := LoadConfig(config.Config{Environment: "production"})
	assert.Equal(t, "missioncontrol", cfg.ServiceName)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigClampsSamplingRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLING_RATIO", "4")
	assert.Equal(t, 1.0, LoadConfig(config.Config{}).OtelSamplingRatio)

	t.Setenv("OTEL_SAMPLING_RATIO", "-0.5")
	assert.Equal(t, 0.0, LoadConfig(config.Config{}).OtelSamplingRatio)
}

func TestDebugInDevEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.True(t, LoadConfig(config.Config{Environment: "local"}).Debug())
}
