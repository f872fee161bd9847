package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	idempotencydomain "github.com/tair/pos-ledger/internal/idempotency/domain"
	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/metrics"
	"github.com/tair/pos-ledger/pkg/money"
)

// CreateOrderEndpoint is recorded on idempotency records taken by this handler
const CreateOrderEndpoint = "POST /api/orders"

// LineInput is one requested order line
type LineInput struct {
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	LocationID     string
	UserID         string
	Lines          []LineInput
	IdempotencyKey string
}

// CreateOrderResult carries the order and whether it was replayed from a
// previous request with the same idempotency key
type CreateOrderResult struct {
	Order    *domain.Order
	Replayed bool
}

// IdempotencyConfig holds the lifetimes of idempotency records
type IdempotencyConfig struct {
	ResponseTTL   time.Duration
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns 24h for finished and 5m for in-flight keys
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{ResponseTTL: 24 * time.Hour, ProcessingTTL: 5 * time.Minute}
}

// CreateOrderHandler coordinates idempotency, stock reservation and
// persistence for a new order.
type CreateOrderHandler struct {
	orders    domain.OrderRepository
	stock     domain.StockReserver
	registry  idempotencydomain.Repository
	publisher domain.EventPublisher
	cfg       IdempotencyConfig
	now       func() time.Time
}

// NewCreateOrderHandler creates a new create order handler.
// publisher may be nil when events are disabled.
func NewCreateOrderHandler(
	orders domain.OrderRepository,
	stock domain.StockReserver,
	registry idempotencydomain.Repository,
	publisher domain.EventPublisher,
	cfg IdempotencyConfig,
) *CreateOrderHandler {
	return &CreateOrderHandler{
		orders:    orders,
		stock:     stock,
		registry:  registry,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle runs the create-order protocol:
//  1. replay an order already recorded under the key
//  2. take the key with a processing record, or replay/conflict if held
//  3. reserve stock line by line, releasing on the first shortfall
//  4. persist the order, releasing every reservation if that fails
//  5. record the response under the key
//
// Any failure after step 2 drops the processing record so the client can
// retry with the same key straight away.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	start := time.Now()
	defer func() { metrics.OrderCreateDuration.Observe(time.Since(start).Seconds()) }()

	if err := validate(cmd); err != nil {
		metrics.OrdersCreated.WithLabelValues("invalid").Inc()
		return nil, err
	}

	key := strings.TrimSpace(cmd.IdempotencyKey)
	if key != "" {
		existing, err := h.findByKey(ctx, key)
		if err != nil {
			metrics.OrdersCreated.WithLabelValues("error").Inc()
			return nil, err
		}
		if existing != nil {
			return h.replay(ctx, existing), nil
		}

		acquired, err := h.registry.CreateIfAbsent(ctx, key, CreateOrderEndpoint, cmd.UserID, h.cfg.ProcessingTTL)
		if err != nil {
			metrics.OrdersCreated.WithLabelValues("error").Inc()
			return nil, apperror.Internal("failed to acquire idempotency key", err)
		}
		if !acquired {
			// someone else holds the key; their order may have landed meanwhile
			existing, err := h.findByKey(ctx, key)
			if err != nil {
				metrics.OrdersCreated.WithLabelValues("error").Inc()
				return nil, err
			}
			if existing != nil {
				return h.replay(ctx, existing), nil
			}
			metrics.IdempotencyOutcomes.WithLabelValues("in_flight").Inc()
			metrics.OrdersCreated.WithLabelValues("conflict").Inc()
			return nil, apperror.Conflict("request with idempotency key %q is in flight", key)
		}
		metrics.IdempotencyOutcomes.WithLabelValues("acquired").Inc()
	}

	order, replayed, err := h.place(ctx, cmd, key)
	if err != nil {
		if key != "" {
			h.releaseKey(ctx, key)
		}
		if errors.Is(err, apperror.ErrInsufficientStock) {
			metrics.OrdersCreated.WithLabelValues("insufficient_stock").Inc()
		} else {
			metrics.OrdersCreated.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if replayed {
		h.releaseKey(ctx, key)
		return h.replay(ctx, order), nil
	}

	if key != "" {
		h.finalize(ctx, key, order)
	}
	metrics.OrdersCreated.WithLabelValues("created").Inc()

	logger.Info(ctx).
		Str("order_id", order.ID.String()).
		Str("location_id", order.LocationID).
		Str("total", money.Format(order.Total)).
		Int("lines", len(order.Lines)).
		Msg("Order created")

	if h.publisher != nil {
		if err := h.publisher.PublishOrderCreated(ctx, order); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", order.ID.String()).Msg("Failed to publish order created event")
		}
	}

	return &CreateOrderResult{Order: order}, nil
}

// place reserves stock and persists the order. It reports replayed=true
// when a concurrent request persisted an order under the same key first.
func (h *CreateOrderHandler) place(ctx context.Context, cmd CreateOrderCommand, key string) (*domain.Order, bool, error) {
	now := h.now()
	order := &domain.Order{
		ID:         uuid.New(),
		LocationID: cmd.LocationID,
		UserID:     cmd.UserID,
		Status:     domain.StatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if key != "" {
		order.IdempotencyKey = &key
	}
	for i, l := range cmd.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			OrderID:   order.ID,
			Position:  i,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	order.Price()

	reserved, err := h.reserveAll(ctx, cmd.LocationID, mergeLines(cmd.Lines))
	if err != nil {
		return nil, false, err
	}

	if err := h.orders.Create(ctx, order); err != nil {
		h.releaseAll(ctx, cmd.LocationID, reserved)
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			existing, findErr := h.findByKey(ctx, key)
			if findErr != nil {
				return nil, false, findErr
			}
			if existing != nil {
				return existing, true, nil
			}
			return nil, false, apperror.Conflict("request with idempotency key %q is in flight", key)
		}
		return nil, false, apperror.Internal("failed to persist order", err)
	}

	return order, false, nil
}

// reserveAll takes stock for each line in turn. On the first failure every
// line already taken is returned, newest first.
func (h *CreateOrderHandler) reserveAll(ctx context.Context, locationID string, lines []LineInput) ([]LineInput, error) {
	reserved := make([]LineInput, 0, len(lines))
	for _, l := range lines {
		if err := h.stock.Reserve(ctx, locationID, l.ItemID, l.Quantity); err != nil {
			h.releaseAll(ctx, locationID, reserved)
			return nil, err
		}
		reserved = append(reserved, l)
	}
	return reserved, nil
}

// releaseAll runs even when ctx is already cancelled; a failed release is
// logged as leaked stock since nothing else will return it.
func (h *CreateOrderHandler) releaseAll(ctx context.Context, locationID string, reserved []LineInput) {
	if len(reserved) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		l := reserved[i]
		if err := h.stock.Release(ctx, locationID, l.ItemID, l.Quantity); err != nil {
			logger.Error(ctx).Err(err).
				Str("location_id", locationID).
				Str("item_id", l.ItemID).
				Str("quantity", l.Quantity.String()).
				Msg("Failed to release reserved stock, stock leaked")
			continue
		}
		metrics.ReservationRollbacks.Inc()
	}
}

func (h *CreateOrderHandler) releaseKey(ctx context.Context, key string) {
	if err := h.registry.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Warn(ctx).Err(err).Str("idempotency_key", key).Msg("Failed to release idempotency key")
		return
	}
	metrics.IdempotencyOutcomes.WithLabelValues("released").Inc()
}

// finalize stores the response under the key. A failure here is logged but
// not returned: the order row itself carries the key, so retries still
// replay it.
func (h *CreateOrderHandler) finalize(ctx context.Context, key string, order *domain.Order) {
	body, err := json.Marshal(idempotencydomain.OrderResponse{OrderID: order.ID.String()})
	if err == nil {
		_, err = h.registry.SetResponse(context.WithoutCancel(ctx), key, body, h.cfg.ResponseTTL)
	}
	if err != nil {
		logger.Error(ctx).Err(err).Str("idempotency_key", key).Str("order_id", order.ID.String()).Msg("Failed to record idempotent response")
		return
	}
	metrics.IdempotencyOutcomes.WithLabelValues("finalized").Inc()
}

func (h *CreateOrderHandler) findByKey(ctx context.Context, key string) (*domain.Order, error) {
	order, err := h.orders.FindByIdempotencyKey(ctx, key)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Internal("failed to look up idempotency key", err)
	}
	return order, nil
}

func (h *CreateOrderHandler) replay(ctx context.Context, order *domain.Order) *CreateOrderResult {
	metrics.IdempotencyOutcomes.WithLabelValues("replayed").Inc()
	metrics.OrdersCreated.WithLabelValues("replayed").Inc()
	logger.Debug(ctx).Str("order_id", order.ID.String()).Msg("Replaying order for idempotency key")
	return &CreateOrderResult{Order: order, Replayed: true}
}

func validate(cmd CreateOrderCommand) error {
	if strings.TrimSpace(cmd.LocationID) == "" {
		return apperror.Validation("location_id is required")
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return apperror.Validation("user_id is required")
	}
	if len(cmd.Lines) == 0 {
		return apperror.Validation("order must have at least one item")
	}
	for i, l := range cmd.Lines {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(l.ItemID) == "" {
			return apperror.Validation("%s.item_id is required", field)
		}
		if l.Quantity.Sign() <= 0 {
			return apperror.Validation("%s.quantity must be positive", field)
		}
		if l.UnitPrice.Sign() < 0 {
			return apperror.Validation("%s.unit_price must not be negative", field)
		}
		if !money.ValidScale(l.Quantity) || !money.ValidScale(l.UnitPrice) {
			return apperror.Validation("%s amounts must have at most %d fractional digits", field, money.Scale)
		}
		if !money.InRange(l.Quantity) || !money.InRange(l.UnitPrice) {
			return apperror.Validation("%s amounts must be smaller than %s", field, money.MaxAmount)
		}
	}
	for _, l := range mergeLines(cmd.Lines) {
		if !money.InRange(l.Quantity) {
			return apperror.Validation("total quantity of item %s must be smaller than %s", l.ItemID, money.MaxAmount)
		}
	}
	subtotal := decimal.Zero
	for _, l := range cmd.Lines {
		subtotal = subtotal.Add(l.Quantity.Mul(l.UnitPrice))
	}
	if !money.InRange(subtotal) {
		return apperror.Validation("order total must be smaller than %s", money.MaxAmount)
	}
	return nil
}

// mergeLines sums quantities per item, keeping first-seen order
func mergeLines(lines []LineInput) []LineInput {
	index := make(map[string]int, len(lines))
	merged := make([]LineInput, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ItemID]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(l.Quantity)
			continue
		}
		index[l.ItemID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}
