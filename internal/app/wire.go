//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/pos-ledger/internal/config"
	inventoryhttp "github.com/tair/pos-ledger/internal/inventory/delivery/http"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-ledger/internal/inventory/usecase/query"
	ordergrpc "github.com/tair/pos-ledger/internal/order/delivery/grpc"
	orderhttp "github.com/tair/pos-ledger/internal/order/delivery/http"
	ordercommand "github.com/tair/pos-ledger/internal/order/usecase/command"
	orderquery "github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/kafka"
)

// RepositorySet selects storage backends
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideIdempotencyRepository,
	ProvideOrderRepository,
	ProvideStockReserver,
)

var InventorySet = wire.NewSet(
	ProvideInventoryPublisher,
	inventorycommand.NewAdjustQuantityHandler,
	inventoryquery.NewGetInventoryHandler,
	inventoryquery.NewListInventoryHandler,
	inventoryhttp.NewInventoryHandler,
)

var OrderSet = wire.NewSet(
	ProvideOrderPublisher,
	ProvideIdempotencyConfig,
	ordercommand.NewCreateOrderHandler,
	ordercommand.NewUpdateStatusHandler,
	orderquery.NewGetOrderHandler,
	orderquery.NewListOrdersHandler,
	orderhttp.NewOrderHandler,
	ordergrpc.NewServer,
)

// InitializeApp wires the service. publisher may be nil when Kafka is
// disabled, rdb when no component needs Redis.
func InitializeApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, publisher *kafka.Publisher) (*App, error) {
	wire.Build(
		RepositorySet,
		InventorySet,
		OrderSet,
		ProvideIdentity,
		ProvideRateLimiter,
		ProvideScheduler,
		NewApp,
	)
	return nil, nil
}
