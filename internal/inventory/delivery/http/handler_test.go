package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	inventoryhttp "github.com/tair/pos-ledger/internal/inventory/delivery/http"
	"github.com/tair/pos-ledger/internal/inventory/usecase/command"
	"github.com/tair/pos-ledger/internal/inventory/usecase/query"
	"github.com/tair/pos-ledger/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newRouter(repo *testutil.InventoryRepository) *mux.Router {
	h := inventoryhttp.NewInventoryHandler(
		command.NewAdjustQuantityHandler(repo, nil),
		query.NewGetInventoryHandler(repo),
		query.NewListInventoryHandler(repo),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec, env
}

func TestAdjustAndGet(t *testing.T) {
	repo := testutil.NewInventoryRepository()
	router := newRouter(repo)

	rec, env := do(t, router, http.MethodPost, "/api/locations/S/inventory/adjust", `{"item_id":"P","delta":"10"}`)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("adjust +10: %d %+v", rec.Code, env)
	}
	var inv inventoryhttp.InventoryResponse
	json.Unmarshal(env.Data, &inv)
	if inv.Quantity != "10.00" || inv.Version != 1 {
		t.Errorf("after +10: %+v", inv)
	}

	// numeric deltas are accepted as well as strings
	rec, _ = do(t, router, http.MethodPost, "/api/locations/S/inventory/adjust", `{"item_id":"P","delta":-3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("adjust -3: %d", rec.Code)
	}

	rec, env = do(t, router, http.MethodPost, "/api/locations/S/inventory/adjust", `{"item_id":"P","delta":"-20"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("adjust -20: status %d, want 409", rec.Code)
	}
	var data map[string]string
	json.Unmarshal(env.Data, &data)
	if data["item_id"] != "P" {
		t.Errorf("conflict data = %v", data)
	}

	rec, env = do(t, router, http.MethodGet, "/api/locations/S/inventory/P", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	json.Unmarshal(env.Data, &inv)
	if inv.Quantity != "7.00" || inv.Version != 2 {
		t.Errorf("after -3 and rejected -20: %+v", inv)
	}
}

func TestAdjust_BadInput(t *testing.T) {
	router := newRouter(testutil.NewInventoryRepository())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"item_id":`},
		{"non numeric delta", `{"item_id":"P","delta":"ten"}`},
		{"too many decimals", `{"item_id":"P","delta":"0.001"}`},
		{"missing item", `{"delta":"1"}`},
		{"missing delta", `{"item_id":"P"}`},
		{"null delta", `{"item_id":"P","delta":null}`},
		{"oversized delta", `{"item_id":"P","delta":"-184467440737095511.16"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodPost, "/api/locations/S/inventory/adjust", tt.body)
			if rec.Code != http.StatusBadRequest || env.Success {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAdjust_MissingDeltaCreatesNothing(t *testing.T) {
	router := newRouter(testutil.NewInventoryRepository())

	rec, env := do(t, router, http.MethodPost, "/api/locations/S/inventory/adjust", `{"item_id":"P"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error != "delta is required" {
		t.Errorf("error = %q", env.Error)
	}

	rec, _ = do(t, router, http.MethodGet, "/api/locations/S/inventory/P", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after rejected adjust: %d, want 404", rec.Code)
	}
}

func TestGetMissingAndList(t *testing.T) {
	repo := testutil.NewInventoryRepository()
	for _, item := range []string{"c", "a", "b"} {
		repo.Seed("S", item, decimal.NewFromInt(1))
	}
	router := newRouter(repo)

	rec, _ := do(t, router, http.MethodGet, "/api/locations/S/inventory/zzz", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing item: %d, want 404", rec.Code)
	}

	rec, env := do(t, router, http.MethodGet, "/api/locations/S/inventory?limit=2&offset=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var items []inventoryhttp.InventoryResponse
	json.Unmarshal(env.Data, &items)
	if len(items) != 2 || items[0].ItemID != "b" || items[1].ItemID != "c" {
		t.Errorf("page = %+v", items)
	}

	rec, _ = do(t, router, http.MethodGet, "/api/locations/S/inventory?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: %d, want 400", rec.Code)
	}
}
