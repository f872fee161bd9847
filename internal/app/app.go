package app

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	"github.com/tair/pos-ledger/internal/config"
	"github.com/tair/pos-ledger/internal/idempotency/cleanup"
	idempotencyrepo "github.com/tair/pos-ledger/internal/idempotency/repository"
	inventoryhttp "github.com/tair/pos-ledger/internal/inventory/delivery/http"
	inventoryrepo "github.com/tair/pos-ledger/internal/inventory/repository"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	ordergrpc "github.com/tair/pos-ledger/internal/order/delivery/grpc"
	orderhttp "github.com/tair/pos-ledger/internal/order/delivery/http"
	orderrepo "github.com/tair/pos-ledger/internal/order/repository"
	"github.com/tair/pos-ledger/pkg/health"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/middleware"
)

// App is the assembled service
type App struct {
	InventoryHTTP *inventoryhttp.InventoryHandler
	OrderHTTP     *orderhttp.OrderHandler
	GRPC          *ordergrpc.Server
	Adjuster      *inventorycommand.AdjustQuantityHandler
	Scheduler     *cleanup.Scheduler
	Identity      *middleware.Identity
	RateLimiter   *middleware.RateLimiter
}

// NewApp collects the wired components
func NewApp(
	inventoryHTTP *inventoryhttp.InventoryHandler,
	orderHTTP *orderhttp.OrderHandler,
	grpcServer *ordergrpc.Server,
	adjuster *inventorycommand.AdjustQuantityHandler,
	scheduler *cleanup.Scheduler,
	identity *middleware.Identity,
	rateLimiter *middleware.RateLimiter,
) *App {
	return &App{
		InventoryHTTP: inventoryHTTP,
		OrderHTTP:     orderHTTP,
		GRPC:          grpcServer,
		Adjuster:      adjuster,
		Scheduler:     scheduler,
		Identity:      identity,
		RateLimiter:   rateLimiter,
	}
}

// Router builds the HTTP handler: API routes behind identity and rate
// limiting, plus health, metrics and swagger.
func (a *App) Router(cfg *config.Config, checker *health.Checker) http.Handler {
	mwConfig := middleware.DefaultConfig(cfg.RequestTimeout)
	mwConfig.SpanName = cfg.ServiceName + "-http"

	router := mux.NewRouter()
	middleware.Register(router, mwConfig)

	router.HandleFunc("/health", checker.Handler()).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// handlers register absolute /api paths
	api := router.NewRoute().Subrouter()
	api.Use(a.Identity.Middleware)
	if a.RateLimiter != nil {
		api.Use(a.RateLimiter.Middleware)
	}
	a.InventoryHTTP.RegisterRoutes(api)
	a.OrderHTTP.RegisterRoutes(api)

	return middleware.CORS(mwConfig, router)
}

// Migrate creates the Postgres tables. Tables of Redis-backed components
// are skipped.
func Migrate(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := orderrepo.NewGormOrderRepository(db).AutoMigrate(); err != nil {
		return err
	}
	if cfg.InventoryBackend == config.BackendPostgres {
		if err := inventoryrepo.NewGormInventoryRepository(db).AutoMigrate(); err != nil {
			return err
		}
	}
	if cfg.IdempotencyBackend == config.BackendPostgres {
		if err := idempotencyrepo.NewGormIdempotencyRepository(db).AutoMigrate(); err != nil {
			return err
		}
	}
	logger.Logger.Info().
		Str("inventory_backend", cfg.InventoryBackend).
		Str("idempotency_backend", cfg.IdempotencyBackend).
		Msg("Database migrations applied")
	return nil
}
