// Package config reads the storefront settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"DripmenStore/internal/model"

	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"bolt"`
	StorePath   string `env:"STORE_PATH" envDefault:"dripmen.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	CatalogPath string `env:"CATALOG_PATH" envDefault:"catalog.yaml"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-please-change"`
	JWTTTLHours int    `env:"JWT_TTL_HOURS" envDefault:"24"`

	LogMode string `env:"LOG_MODE" envDefault:"development"`
	LogFile string `env:"LOG_FILE"`

	SeedDemo     bool `env:"SEED_DEMO" envDefault:"false"`
	ItemsPerPage int  `env:"ITEMS_PER_PAGE" envDefault:"6"`

	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"200"`
	FlatDeliveryFee       float64 `env:"FLAT_DELIVERY_FEE" envDefault:"20"`
}

// Load parses the process environment and checks the result.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom is Load over an explicit variable set.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverBolt:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("STORE_PATH is required for the %s driver", DriverBolt)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("ITEMS_PER_PAGE must be positive, got %d", c.ItemsPerPage)
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTLHours)
	}
	if c.FreeShippingThreshold < 0 || c.FlatDeliveryFee < 0 {
		return fmt.Errorf("delivery pricing must not be negative")
	}
	return nil
}

// Pricing returns the delivery rules.
func (c Config) Pricing() model.Pricing {
	return model.Pricing{
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatDeliveryFee:       c.FlatDeliveryFee,
	}
}
