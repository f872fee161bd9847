package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	inventorycommand "github.com/tair/pos-ledger/internal/inventory/usecase/command"
	orderhttp "github.com/tair/pos-ledger/internal/order/delivery/http"
	"github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/internal/testutil"
	"github.com/tair/pos-ledger/pkg/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	inventory *testutil.InventoryRepository
	orders    *testutil.OrderRepository
	router    http.Handler
}

func newFixture() *fixture {
	return newFixtureWithIdentity(middleware.NewIdentity(""))
}

func newFixtureWithIdentity(identity *middleware.Identity) *fixture {
	f := &fixture{
		inventory: testutil.NewInventoryRepository(),
		orders:    testutil.NewOrderRepository(),
	}
	h := orderhttp.NewOrderHandler(
		command.NewCreateOrderHandler(
			f.orders,
			inventorycommand.NewStockReserver(f.inventory),
			testutil.NewIdempotencyRepository(),
			nil,
			command.DefaultIdempotencyConfig(),
		),
		command.NewUpdateStatusHandler(f.orders, nil),
		query.NewGetOrderHandler(f.orders),
		query.NewListOrdersHandler(f.orders),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	f.router = identity.Middleware(router)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	f.router.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec, env
}

const orderBody = `{"location_id":"S","items":[{"item_id":"P","quantity":"2","unit_price":"3.50"}]}`

func TestCreateOrder_NewThenReplay(t *testing.T) {
	f := newFixture()
	f.inventory.Seed("S", "P", decimal.NewFromInt(5))
	headers := map[string]string{"Idempotency-Key": "K1", "X-User-ID": "cashier-1"}

	rec, env := f.do(t, http.MethodPost, "/api/orders", orderBody, headers)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, env.Error)
	}
	if rec.Header().Get(orderhttp.ReplayHeader) != "" {
		t.Error("fresh order marked as replay")
	}
	var created orderhttp.OrderResponse
	json.Unmarshal(env.Data, &created)
	if created.Subtotal != "7.00" || created.Total != "7.00" || created.Tax != "0.00" {
		t.Errorf("amounts = %s/%s/%s", created.Subtotal, created.Tax, created.Total)
	}
	if created.UserID != "cashier-1" || created.Status != "created" {
		t.Errorf("order = %+v", created)
	}
	if len(created.Items) != 1 || created.Items[0].Quantity != "2.00" || created.Items[0].UnitPrice != "3.50" {
		t.Errorf("items = %+v", created.Items)
	}

	rec, env = f.do(t, http.MethodPost, "/api/orders", orderBody, headers)
	if rec.Code != http.StatusOK || rec.Header().Get(orderhttp.ReplayHeader) != "true" {
		t.Fatalf("replay: %d replay=%q", rec.Code, rec.Header().Get(orderhttp.ReplayHeader))
	}
	var replayed orderhttp.OrderResponse
	json.Unmarshal(env.Data, &replayed)
	if replayed.ID != created.ID {
		t.Errorf("replayed %s, want %s", replayed.ID, created.ID)
	}
	if q := f.inventory.Quantity("S", "P"); !q.Equal(decimal.NewFromInt(3)) {
		t.Errorf("stock = %s, want 3", q)
	}
}

func TestCreateOrder_Errors(t *testing.T) {
	f := newFixture()
	f.inventory.Seed("S", "P", decimal.NewFromInt(1))

	rec, env := f.do(t, http.MethodPost, "/api/orders", orderBody, map[string]string{"X-User-ID": "u"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("insufficient stock: %d", rec.Code)
	}
	var data map[string]string
	json.Unmarshal(env.Data, &data)
	if data["item_id"] != "P" {
		t.Errorf("data = %v", data)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/orders", orderBody, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing user: %d, want 400", rec.Code)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/orders", `{"location_id":"S","user_id":"u","items":[]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no items: %d, want 400", rec.Code)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/orders", `not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body: %d, want 400", rec.Code)
	}
}

func TestCreateOrder_TokenSubjectIsTheUser(t *testing.T) {
	const secret = "s3cret"
	f := newFixtureWithIdentity(middleware.NewIdentity(secret))
	f.inventory.Seed("S", "P", decimal.NewFromInt(10))

	claims := jwt.RegisteredClaims{Subject: "u-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	auth := map[string]string{"Authorization": "Bearer " + signed}

	rec, env := f.do(t, http.MethodPost, "/api/orders",
		`{"location_id":"S","user_id":"someone-else","items":[{"item_id":"P","quantity":"1","unit_price":"1"}]}`, auth)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mismatched user: %d, want 400", rec.Code)
	}
	if env.Error != middleware.ErrUserMismatch.Error() {
		t.Errorf("error = %q", env.Error)
	}
	if q := f.inventory.Quantity("S", "P"); !q.Equal(decimal.NewFromInt(10)) {
		t.Errorf("stock = %s, want 10", q)
	}

	rec, env = f.do(t, http.MethodPost, "/api/orders", orderBody, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, env.Error)
	}
	var created orderhttp.OrderResponse
	json.Unmarshal(env.Data, &created)
	if created.UserID != "u-42" {
		t.Errorf("user = %q, want token subject", created.UserID)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/orders",
		`{"location_id":"S","user_id":"u-42","items":[{"item_id":"P","quantity":"1","unit_price":"1"}]}`, auth)
	if rec.Code != http.StatusCreated {
		t.Errorf("matching user: %d, want 201", rec.Code)
	}
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture()
	f.inventory.Seed("S", "P", decimal.NewFromInt(10))

	_, env := f.do(t, http.MethodPost, "/api/orders", orderBody, map[string]string{"X-User-ID": "u"})
	var created orderhttp.OrderResponse
	json.Unmarshal(env.Data, &created)

	rec, env := f.do(t, http.MethodGet, "/api/orders/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}

	rec, _ = f.do(t, http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status":"bogus"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus status: %d, want 400", rec.Code)
	}

	rec, env = f.do(t, http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status":"cancelled"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: %d", rec.Code)
	}
	var updated orderhttp.OrderResponse
	json.Unmarshal(env.Data, &updated)
	if updated.Status != "cancelled" {
		t.Errorf("status = %s", updated.Status)
	}

	rec, env = f.do(t, http.MethodGet, "/api/orders?status=cancelled&location_id=S", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var list []orderhttp.OrderResponse
	json.Unmarshal(env.Data, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	for path, want := range map[string]int{
		"/api/orders/not-a-uuid":                          http.StatusBadRequest,
		"/api/orders/00000000-0000-0000-0000-000000000001": http.StatusNotFound,
		"/api/orders?status=lost":                         http.StatusBadRequest,
		"/api/orders?limit=x":                             http.StatusBadRequest,
	} {
		if rec, _ := f.do(t, http.MethodGet, path, "", nil); rec.Code != want {
			t.Errorf("GET %s: %d, want %d", path, rec.Code, want)
		}
	}
}
