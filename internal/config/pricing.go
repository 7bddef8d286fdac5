package config

import (
	"errors"
	"io/fs"
	"strings"
	"sync/atomic"

	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PricingConfig holds the fallback rate table and the quote prefix rules.
type PricingConfig struct {
	Defaults   costing.Defaults    `mapstructure:"defaults"`
	QuoteRules []costing.QuoteRule `mapstructure:"quote_rules"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Defaults: costing.DefaultRates(),
		QuoteRules: []costing.QuoteRule{
			{Match: "maziv", Prefix: "MAZ", Offset: 1000},
			{Match: "openserve", Prefix: "OSV", Offset: 2000},
		},
	}
}

type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

// NewStaticPricingConfigHolder returns a holder that never reloads.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewPricingConfigHolder(appCfg Config, log *zap.Logger) (*PricingConfigHolder, error) {
	log = log.Named("config.pricing")
	v := viper.New()

	if appCfg.PricingConfigPath != "" {
		v.SetConfigFile(appCfg.PricingConfigPath)
	} else {
		v.SetConfigName("pricing")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/missioncontrol")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MISSIONCONTROL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Info("pricing config not found, using defaults")
		return NewStaticPricingConfigHolder(DefaultPricingConfig()), nil
	}

	cfg, err := decodePricingConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticPricingConfigHolder(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodePricingConfig(v)
		if err != nil {
			log.Warn("pricing config reload rejected", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("pricing config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func decodePricingConfig(v *viper.Viper) (PricingConfig, error) {
	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return PricingConfig{}, err
	}

	defaults := DefaultPricingConfig()
	if !v.IsSet("pricing.defaults.per_meter_rate") {
		cfg.Defaults.PerMeterRate = defaults.Defaults.PerMeterRate
	}
	if !v.IsSet("pricing.defaults.discount") {
		cfg.Defaults.Discount = defaults.Defaults.Discount
	}
	if !v.IsSet("pricing.quote_rules") {
		cfg.QuoteRules = defaults.QuoteRules
	}
	if err := validatePricingConfig(cfg); err != nil {
		return PricingConfig{}, err
	}
	return cfg, nil
}

func validatePricingConfig(cfg PricingConfig) error {
	if cfg.Defaults.PerMeterRate < 0 {
		return errors.New("pricing.defaults.per_meter_rate cannot be negative")
	}
	if cfg.Defaults.Discount < 0 {
		return errors.New("pricing.defaults.discount cannot be negative")
	}
	for _, rule := range cfg.QuoteRules {
		if strings.TrimSpace(rule.Match) == "" || strings.TrimSpace(rule.Prefix) == "" {
			return errors.New("pricing.quote_rules entries need match and prefix")
		}
		if rule.Offset < 0 {
			return errors.New("pricing.quote_rules offset cannot be negative")
		}
	}
	return nil
}
