// Command migrate applies the embedded schema migrations. Production
// deploys run this before the api; dev setups usually rely on
// MINITHAI_AUTO_MIGRATE instead.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db"
	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() { _ = dbClient.Close() }()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(ctx, "extracting sql.DB failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	logg.Info(ctx, "applying migrations")

	if err := migrate.Run(ctx, sqlDB, cfg.DB.Driver); err != nil {
		logg.Error(ctx, "migrations failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "migrations completed")
}
