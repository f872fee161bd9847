package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/internal/inventory/usecase/command"
	"github.com/tair/pos-ledger/pkg/logger"
)

// Adjuster applies a stock delta; satisfied by *command.AdjustQuantityHandler
type Adjuster interface {
	Handle(ctx context.Context, cmd command.AdjustQuantityCommand) (*domain.Inventory, error)
}

// NewRestockHandler applies restock feed messages as inventory adjustments
func NewRestockHandler(adjuster Adjuster) EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event RestockEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("decode restock event: %w", err)
		}

		inv, err := adjuster.Handle(ctx, command.AdjustQuantityCommand{
			LocationID: event.LocationID,
			ItemID:     event.ItemID,
			Delta:      event.Delta,
		})
		if err != nil {
			return err
		}

		logger.Info(ctx).
			Str("event_id", event.EventID).
			Str("location_id", inv.LocationID).
			Str("item_id", inv.ItemID).
			Str("delta", event.Delta.String()).
			Int64("version", inv.Version).
			Msg("Restock applied")
		return nil
	}
}
