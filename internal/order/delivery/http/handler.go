package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/internal/order/usecase/command"
	"github.com/tair/pos-ledger/internal/order/usecase/query"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/middleware"
	"github.com/tair/pos-ledger/pkg/money"
	"github.com/tair/pos-ledger/pkg/response"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key of a create request
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayHeader marks a response served from an earlier request
	ReplayHeader = "X-Idempotent-Replay"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	createHandler       *command.CreateOrderHandler
	updateStatusHandler *command.UpdateStatusHandler
	getHandler          *query.GetOrderHandler
	listHandler         *query.ListOrdersHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	updateStatusHandler *command.UpdateStatusHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
) *OrderHandler {
	return &OrderHandler{
		createHandler:       createHandler,
		updateStatusHandler: updateStatusHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
	}
}

// LineResponse is one order line on the wire
type LineResponse struct {
	ItemID    string `json:"item_id"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderResponse is the wire form of an order; amounts are strings
type OrderResponse struct {
	ID             string         `json:"id"`
	LocationID     string         `json:"location_id"`
	UserID         string         `json:"user_id"`
	Items          []LineResponse `json:"items"`
	Subtotal       string         `json:"subtotal"`
	Tax            string         `json:"tax"`
	Total          string         `json:"total"`
	Status         string         `json:"status"`
	IdempotencyKey *string        `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ToResponse converts a domain order
func ToResponse(o *domain.Order) OrderResponse {
	items := make([]LineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, LineResponse{
			ItemID:    l.ItemID,
			Quantity:  money.Format(l.Quantity),
			UnitPrice: money.Format(l.UnitPrice),
		})
	}
	return OrderResponse{
		ID:             o.ID.String(),
		LocationID:     o.LocationID,
		UserID:         o.UserID,
		Items:          items,
		Subtotal:       money.FormatAmount(o.Subtotal),
		Tax:            money.FormatAmount(o.Tax),
		Total:          money.FormatAmount(o.Total),
		Status:         string(o.Status),
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type createOrderRequest struct {
	LocationID string `json:"location_id"`
	UserID     string `json:"user_id"`
	Items      []struct {
		ItemID    string          `json:"item_id"`
		Quantity  decimal.Decimal `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
	} `json:"items"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, err := middleware.EffectiveUserID(r.Context(), req.UserID)
	if err != nil {
		response.Error(w, r, apperror.Validation("%s", err.Error()))
		return
	}

	cmd := command.CreateOrderCommand{
		LocationID:     req.LocationID,
		UserID:         userID,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	}
	for _, it := range req.Items {
		cmd.Lines = append(cmd.Lines, command.LineInput{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	result, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if result.Replayed {
		w.Header().Set(ReplayHeader, "true")
		response.OK(w, http.StatusOK, "Order already created", ToResponse(result.Order))
		return
	}
	response.OK(w, http.StatusCreated, "Order created", ToResponse(result.Order))
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "", ToResponse(order))
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, err := intParam(q.Get("skip"))
	if err != nil {
		response.BadRequest(w, "Invalid skip")
		return
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		response.BadRequest(w, "Invalid limit")
		return
	}

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{
		LocationID: q.Get("location_id"),
		UserID:     q.Get("user_id"),
		Status:     q.Get("status"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToResponse(&orders[i]))
	}
	response.OK(w, http.StatusOK, "", out)
}

// UpdateStatus handles PATCH /api/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	order, err := h.updateStatusHandler.Handle(r.Context(), command.UpdateStatusCommand{
		OrderID: mux.Vars(r)["id"],
		Status:  req.Status,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, http.StatusOK, "Order status updated", ToResponse(order))
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.GetOrder).Methods("GET")
	router.HandleFunc("/api/orders/{id}/status", h.UpdateStatus).Methods("PATCH")
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
