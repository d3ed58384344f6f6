// Package db opens the configured storage backend.
package db

import (
	"context"
	"fmt"

	"DripmenStore/internal/config"
	"DripmenStore/internal/store"

	"go.uber.org/zap"
)

// Connect opens the store selected by cfg.StoreDriver.
func Connect(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		zap.S().Infow("storage ready", "driver", cfg.StoreDriver)
		return pg, nil
	case config.DriverBolt, "":
		b, err := store.OpenBolt(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		zap.S().Infow("storage ready", "driver", config.DriverBolt, "path", cfg.StorePath)
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StoreDriver)
	}
}
