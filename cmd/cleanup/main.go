// Command cleanup purges expired idempotency records once and exits.
// Run it from cron when the service's own scheduler is disabled.
package main

import (
	"context"
	"os"
	"time"

	"github.com/tair/pos-ledger/internal/config"
	"github.com/tair/pos-ledger/internal/idempotency/repository"
	"github.com/tair/pos-ledger/pkg/database"
	"github.com/tair/pos-ledger/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.ServiceName+"-cleanup", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if cfg.IdempotencyBackend != config.BackendPostgres {
		logger.Logger.Info().
			Str("backend", cfg.IdempotencyBackend).
			Msg("Idempotency records expire through key TTLs, nothing to purge")
		return
	}

	conn, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer conn.Close()

	db, err := database.GormOnConn(conn)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open gorm")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := repository.NewGormIdempotencyRepository(db).PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to purge idempotency records")
		os.Exit(1)
	}
	logger.Logger.Info().Int64("purged", n).Msg("Expired idempotency records purged")
}
