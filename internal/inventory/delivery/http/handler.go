package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/internal/inventory/usecase/command"
	"github.com/tair/pos-ledger/internal/inventory/usecase/query"
	"github.com/tair/pos-ledger/pkg/money"
	"github.com/tair/pos-ledger/pkg/response"
)

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	adjustHandler *command.AdjustQuantityHandler
	getHandler    *query.GetInventoryHandler
	listHandler   *query.ListInventoryHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	adjustHandler *command.AdjustQuantityHandler,
	getHandler *query.GetInventoryHandler,
	listHandler *query.ListInventoryHandler,
) *InventoryHandler {
	return &InventoryHandler{
		adjustHandler: adjustHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
	}
}

// InventoryResponse is the wire form of a record; amounts are strings
type InventoryResponse struct {
	LocationID       string    `json:"location_id"`
	ItemID           string    `json:"item_id"`
	Quantity         string    `json:"quantity"`
	ReservedQuantity string    `json:"reserved_quantity"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts a domain record
func ToResponse(inv *domain.Inventory) InventoryResponse {
	return InventoryResponse{
		LocationID:       inv.LocationID,
		ItemID:           inv.ItemID,
		Quantity:         money.Format(inv.Quantity),
		ReservedQuantity: money.Format(inv.ReservedQuantity),
		Version:          inv.Version,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

type adjustRequest struct {
	ItemID string           `json:"item_id"`
	Delta  *decimal.Decimal `json:"delta"`
}

// AdjustQuantity handles POST /api/locations/{location_id}/inventory/adjust
func (h *InventoryHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Delta == nil {
		response.BadRequest(w, "delta is required")
		return
	}

	inv, err := h.adjustHandler.Handle(r.Context(), command.AdjustQuantityCommand{
		LocationID: mux.Vars(r)["location_id"],
		ItemID:     req.ItemID,
		Delta:      *req.Delta,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Inventory adjusted", ToResponse(inv))
}

// GetInventory handles GET /api/locations/{location_id}/inventory/{item_id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inv, err := h.getHandler.Handle(r.Context(), query.GetInventoryQuery{
		LocationID: vars["location_id"],
		ItemID:     vars["item_id"],
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "", ToResponse(inv))
}

// ListInventory handles GET /api/locations/{location_id}/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		response.BadRequest(w, "Invalid limit")
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		response.BadRequest(w, "Invalid offset")
		return
	}

	records, err := h.listHandler.Handle(r.Context(), query.ListInventoryQuery{
		LocationID: mux.Vars(r)["location_id"],
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]InventoryResponse, 0, len(records))
	for i := range records {
		out = append(out, ToResponse(&records[i]))
	}
	response.OK(w, http.StatusOK, "", out)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/locations/{location_id}/inventory/adjust", h.AdjustQuantity).Methods("POST")
	router.HandleFunc("/api/locations/{location_id}/inventory/{item_id}", h.GetInventory).Methods("GET")
	router.HandleFunc("/api/locations/{location_id}/inventory", h.ListInventory).Methods("GET")
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
