package command

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/metrics"
	"github.com/tair/pos-ledger/pkg/money"
)

// AdjustQuantityCommand represents a signed stock adjustment
type AdjustQuantityCommand struct {
	LocationID string
	ItemID     string
	Delta      decimal.Decimal
}

// AdjustQuantityHandler handles adjust quantity command
type AdjustQuantityHandler struct {
	repo      domain.InventoryRepository
	publisher domain.EventPublisher
}

// NewAdjustQuantityHandler creates a new adjust quantity handler.
// publisher may be nil when events are disabled.
func NewAdjustQuantityHandler(repo domain.InventoryRepository, publisher domain.EventPublisher) *AdjustQuantityHandler {
	return &AdjustQuantityHandler{repo: repo, publisher: publisher}
}

// Handle applies the delta and returns the post-mutation record.
// A negative delta only succeeds when enough stock is present; otherwise
// the record is untouched and an insufficient stock error is returned.
func (h *AdjustQuantityHandler) Handle(ctx context.Context, cmd AdjustQuantityCommand) (*domain.Inventory, error) {
	if err := validateKey(cmd.LocationID, cmd.ItemID); err != nil {
		return nil, err
	}
	if !money.ValidScale(cmd.Delta) {
		return nil, apperror.Validation("delta must have at most %d fractional digits", money.Scale)
	}
	if !money.InRange(cmd.Delta) {
		return nil, apperror.Validation("delta must be smaller than %s in magnitude", money.MaxAmount)
	}

	var (
		inv *domain.Inventory
		err error
	)
	if cmd.Delta.Sign() >= 0 {
		inv, err = h.repo.IncrementOrCreate(ctx, cmd.LocationID, cmd.ItemID, cmd.Delta)
	} else {
		inv, err = h.repo.IncrementIfAtLeast(ctx, cmd.LocationID, cmd.ItemID, cmd.Delta, cmd.Delta.Neg())
	}

	if errors.Is(err, domain.ErrInsufficientStock) {
		metrics.InventoryAdjustments.WithLabelValues("insufficient_stock").Inc()
		return nil, apperror.InsufficientStock(cmd.ItemID, err)
	}
	if errors.Is(err, domain.ErrQuantityOutOfRange) {
		metrics.InventoryAdjustments.WithLabelValues("invalid").Inc()
		return nil, apperror.Validation("quantity of item %s would exceed %s", cmd.ItemID, money.MaxAmount)
	}
	if err != nil {
		metrics.InventoryAdjustments.WithLabelValues("error").Inc()
		return nil, apperror.Internal("failed to adjust inventory", err)
	}
	metrics.InventoryAdjustments.WithLabelValues("ok").Inc()

	logger.Debug(ctx).
		Str("location_id", inv.LocationID).
		Str("item_id", inv.ItemID).
		Str("delta", cmd.Delta.String()).
		Str("quantity", inv.Quantity.String()).
		Int64("version", inv.Version).
		Msg("Inventory adjusted")

	if h.publisher != nil {
		if err := h.publisher.PublishInventoryAdjusted(ctx, inv, cmd.Delta); err != nil {
			logger.Warn(ctx).Err(err).Str("item_id", inv.ItemID).Msg("Failed to publish inventory adjustment")
		}
	}

	return inv, nil
}

func validateKey(locationID, itemID string) error {
	if strings.TrimSpace(locationID) == "" {
		return apperror.Validation("location_id is required")
	}
	if strings.TrimSpace(itemID) == "" {
		return apperror.Validation("item_id is required")
	}
	return nil
}
