package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"gorm.io/gorm"

	_ "github.com/tair/pos-ledger/docs"
	"github.com/tair/pos-ledger/internal/app"
	"github.com/tair/pos-ledger/internal/config"
	ordergrpc "github.com/tair/pos-ledger/internal/order/delivery/grpc"
	"github.com/tair/pos-ledger/kafka"
	"github.com/tair/pos-ledger/pkg/database"
	"github.com/tair/pos-ledger/pkg/health"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting POS ledger service")

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: "1.0.0",
		JaegerEndpoint: cfg.JaegerEndpoint,
		SampleRatio:    1.0,
	})
	if err != nil {
		// tracing is optional; the service runs without an exporter
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Migrate(ctx, cfg, db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	rdb := connectRedis(ctx, cfg)

	var publisher *kafka.Publisher
	if cfg.KafkaEnabled() {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
	}

	application, err := app.InitializeApp(cfg, db, rdb, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	var consumer *kafka.Consumer
	if cfg.KafkaEnabled() {
		consumer, err = kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicInventoryRestock})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		consumer.RegisterHandler(kafka.EventTypeInventoryRestock, kafka.NewRestockHandler(application.Adjuster))
		consumer.Start(ctx)
	}

	if cfg.IdempotencyCleanupInterval > 0 {
		application.Scheduler.Start(ctx)
	}

	checker := newChecker(cfg, db, rdb)
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           application.Router(cfg, checker),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	grpcServer, grpcHealth := ordergrpc.NewGRPCServer(application.GRPC, application.Identity)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen")
	}
	go func() {
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down servers...")

	grpcHealth.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP shutdown failed")
	}
	grpcServer.GracefulStop()

	application.Scheduler.Stop()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
	if rdb != nil {
		rdb.Close()
	}
	sqlDB.Close()
	if tp != nil {
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to flush traces")
		}
	}

	logger.Logger.Info().Msg("Shutdown complete")
}

// connectRedis returns nil when no component is configured for Redis
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.NeedsRedis() {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}
	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return rdb
}

func newChecker(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *health.Checker {
	checker := health.NewChecker(cfg.ServiceName, 2*time.Second)
	checker.Register("postgres", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if rdb != nil {
		checker.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return checker
}
