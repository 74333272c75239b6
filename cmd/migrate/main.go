package main

import (
	"context"
	"log"
	"time"

	"github.com/engagehq/engage-api/internal/config"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/migrations"
	"github.com/engagehq/engage-api/internal/postgres"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("running database migrations")
	if err := migrations.Run(ctx, db, logger); err != nil {
		logger.Fatalw("migration failed", "error", err)
	}
	logger.Info("migration completed successfully")
}
