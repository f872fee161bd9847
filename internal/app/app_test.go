package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/app"
	"github.com/tair/pos-ledger/internal/config"
	"github.com/tair/pos-ledger/internal/idempotency/cleanup"
	inventoryhttp "github.com/tair/pos-ledger/internal/inventory/delivery/http"
	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-ledger/internal/inventory/usecase/query"
	ordergrpc "github.com/tair/pos-ledger/internal/order/delivery/grpc"
	orderhttp "github.com/tair/pos-ledger/internal/order/delivery/http"
	ordercommand "github.com/tair/pos-ledger/internal/order/usecase/command"
	orderquery "github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/internal/testutil"
	"github.com/tair/pos-ledger/pkg/health"
	"github.com/tair/pos-ledger/pkg/middleware"
)

const secret = "s3cret"

func newRouter(t *testing.T, inv *testutil.InventoryRepository) http.Handler {
	t.Helper()
	orders := testutil.NewOrderRepository()
	registry := testutil.NewIdempotencyRepository()

	adjust := inventorycommand.NewAdjustQuantityHandler(inv, nil)
	getInv := inventoryquery.NewGetInventoryHandler(inv)
	create := ordercommand.NewCreateOrderHandler(orders, inventorycommand.NewStockReserver(inv), registry, nil, ordercommand.DefaultIdempotencyConfig())
	update := ordercommand.NewUpdateStatusHandler(orders, nil)
	getOrder := orderquery.NewGetOrderHandler(orders)
	list := orderquery.NewListOrdersHandler(orders)

	a := app.NewApp(
		inventoryhttp.NewInventoryHandler(adjust, getInv, inventoryquery.NewListInventoryHandler(inv)),
		orderhttp.NewOrderHandler(create, update, getOrder, list),
		ordergrpc.NewServer(create, update, getOrder, list, adjust, getInv),
		adjust,
		cleanup.NewScheduler(registry, time.Minute),
		middleware.NewIdentity(secret),
		nil,
	)

	cfg := &config.Config{ServiceName: "pos-test", RequestTimeout: 5 * time.Second, JWTSecret: secret}
	checker := health.NewChecker(cfg.ServiceName, time.Second)
	checker.Register("postgres", func(context.Context) error { return nil })
	return a.Router(cfg, checker)
}

func token(t *testing.T, subject string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestRouter_PublicEndpointsSkipAuth(t *testing.T) {
	router := newRouter(t, testutil.NewInventoryRepository())

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouter_OrderWithToken(t *testing.T) {
	inv := testutil.NewInventoryRepository()
	inv.Seed("S", "P", decimal.NewFromInt(5))
	router := newRouter(t, inv)
	body := `{"location_id":"S","items":[{"item_id":"P","quantity":"2","unit_price":"1.25"}]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token(t, "cashier-7"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("with token = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id header missing")
	}

	var env struct {
		Data struct {
			UserID string `json:"user_id"`
			Total  string `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.UserID != "cashier-7" || env.Data.Total != "2.50" {
		t.Errorf("order = %+v", env.Data)
	}
	if q := inv.Quantity("S", "P"); !q.Equal(decimal.NewFromInt(3)) {
		t.Errorf("stock = %s, want 3", q)
	}
}
