package config

import (
	"os"
	"strconv"
	"time"
)

type MarketplaceConfig struct {
	// RetryAttempts and RetryBaseDelay drive the per-provider retry policy:
	// the delay doubles after every failed attempt.
	RetryAttempts  int           `env:"MARKETPLACE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"MARKETPLACE_RETRY_BASE_DELAY" envDefault:"500ms"`
	// ProviderTimeout caps a single provider's total wall-clock time, retries
	// included, so one slow provider cannot stall a whole aggregation.
	ProviderTimeout time.Duration `env:"MARKETPLACE_PROVIDER_TIMEOUT" envDefault:"15s"`
}

var Marketplace = loadMarketplaceConfig()

func loadMarketplaceConfig() MarketplaceConfig {
	cfg := MarketplaceConfig{
		RetryAttempts:   3,
		RetryBaseDelay:  500 * time.Millisecond,
		ProviderTimeout: 15 * time.Second,
	}

	if v := os.Getenv("MARKETPLACE_RETRY_ATTEMPTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.RetryAttempts = i
		}
	}

	if v := os.Getenv("MARKETPLACE_RETRY_BASE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RetryBaseDelay = d
		}
	}

	if v := os.Getenv("MARKETPLACE_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ProviderTimeout = d
		}
	}

	return cfg
}
