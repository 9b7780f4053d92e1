// Package cli consolidates initialization shared by the binaries under
// cmd/: logging, env loading, configuration, and the open → ready-gate →
// seed sequence for the ledger store.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	applog "tally/internal/log"
	"tally/internal/services"
	"tally/internal/storage"
)

// SetupLogger initializes structured logging at the given level and
// installs it as the process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(applog.Config{Level: cfg.SlogLevel()})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Missing files
// are fine in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process on
// validation failure.
func LoadAndValidateConfig() *config.Config {
	LoadEnvFile()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.New(applog.Config{}).Error("configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenLedger opens the store, blocks until the schema bootstrap reports
// ready, and seeds the default categories when configured to. Repository
// calls are only safe after this returns.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*storage.Repository, error) {
	repo, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	if err := repo.Bootstrap().WaitReady(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	if cfg.SeedDefaults {
		if _, err := services.SeedDefaultCategories(ctx, repo, logger); err != nil {
			repo.Close()
			return nil, err
		}
	}

	return repo, nil
}
