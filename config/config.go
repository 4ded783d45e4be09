package config

import (
	"lending/core"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
	"github.com/pkg/errors"
)

const (
	defaultPort         = 7777
	defaultCacheTTL     = 15
	defaultKeeperSpec   = "@every 15s"
	defaultOptimalUsage = "0.8"
)

// Load load config file, env variables prefixed with LENDING override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultConfig(config)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}

	if cfg.PriceOracle.CacheTTL == 0 {
		cfg.PriceOracle.CacheTTL = defaultCacheTTL
	}

	if cfg.Keeper.Spec == "" {
		cfg.Keeper.Spec = defaultKeeperSpec
	}

	for idx := range cfg.Reserves {
		r := &cfg.Reserves[idx]
		if r.Decimals == 0 {
			r.Decimals = 18
		}

		if r.OptimalUtilization == "" {
			r.OptimalUtilization = defaultOptimalUsage
		}
	}
}
