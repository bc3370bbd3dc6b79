package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/db"
	"github.com/rihla-travel/portal/internal/logger"
)

// open loads the config, sets up logging and connects to the database
// without migrating it.
func open(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(logger.Options{Development: true, Environment: cfg.AppEnv})

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}
