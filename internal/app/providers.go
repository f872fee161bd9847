// Package app wires repositories, use case handlers and transports into a
// runnable service.
package app

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/pos-ledger/internal/config"
	"github.com/tair/pos-ledger/internal/idempotency/cleanup"
	idempotencydomain "github.com/tair/pos-ledger/internal/idempotency/domain"
	idempotencyrepo "github.com/tair/pos-ledger/internal/idempotency/repository"
	inventorydomain "github.com/tair/pos-ledger/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-ledger/internal/inventory/repository"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	orderdomain "github.com/tair/pos-ledger/internal/order/domain"
	orderrepo "github.com/tair/pos-ledger/internal/order/repository"
	ordercommand "github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/kafka"
	"github.com/tair/pos-ledger/pkg/middleware"
)

// ProvideInventoryRepository selects the inventory backend
func ProvideInventoryRepository(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (inventorydomain.InventoryRepository, error) {
	switch cfg.InventoryBackend {
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("inventory backend %q needs REDIS_ADDR", cfg.InventoryBackend)
		}
		return inventoryrepo.NewTracingInventoryRepository(inventoryrepo.NewRedisInventoryRepository(rdb), "redis"), nil
	case config.BackendPostgres:
		return inventoryrepo.NewTracingInventoryRepository(inventoryrepo.NewGormInventoryRepository(db), "postgresql"), nil
	default:
		return nil, fmt.Errorf("unknown inventory backend %q", cfg.InventoryBackend)
	}
}

// ProvideIdempotencyRepository selects the idempotency backend
func ProvideIdempotencyRepository(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (idempotencydomain.Repository, error) {
	switch cfg.IdempotencyBackend {
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("idempotency backend %q needs REDIS_ADDR", cfg.IdempotencyBackend)
		}
		return idempotencyrepo.NewTracingRepository(idempotencyrepo.NewRedisIdempotencyRepository(rdb), "redis"), nil
	case config.BackendPostgres:
		return idempotencyrepo.NewTracingRepository(idempotencyrepo.NewGormIdempotencyRepository(db), "postgresql"), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.IdempotencyBackend)
	}
}

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewTracingOrderRepository(orderrepo.NewGormOrderRepository(db))
}

// ProvideStockReserver adapts the inventory repository for order placement
func ProvideStockReserver(repo inventorydomain.InventoryRepository) orderdomain.StockReserver {
	return inventorycommand.NewStockReserver(repo)
}

// ProvideInventoryPublisher returns a nil interface when Kafka is off
func ProvideInventoryPublisher(p *kafka.Publisher) inventorydomain.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// ProvideOrderPublisher returns a nil interface when Kafka is off
func ProvideOrderPublisher(p *kafka.Publisher) orderdomain.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func ProvideIdempotencyConfig(cfg *config.Config) ordercommand.IdempotencyConfig {
	return ordercommand.IdempotencyConfig{
		ResponseTTL:   cfg.IdempotencyTTL,
		ProcessingTTL: cfg.IdempotencyProcessingTTL,
	}
}

func ProvideIdentity(cfg *config.Config) *middleware.Identity {
	return middleware.NewIdentity(cfg.JWTSecret)
}

// ProvideRateLimiter returns nil when rate limiting is disabled
func ProvideRateLimiter(cfg *config.Config, rdb *redis.Client) *middleware.RateLimiter {
	if cfg.RateLimitPerMinute <= 0 || rdb == nil {
		return nil
	}
	return middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
}

// ProvideScheduler purges expired idempotency records on the configured interval
func ProvideScheduler(cfg *config.Config, repo idempotencydomain.Repository) *cleanup.Scheduler {
	return cleanup.NewScheduler(repo, cfg.IdempotencyCleanupInterval)
}
