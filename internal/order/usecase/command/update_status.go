package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/logger"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// UpdateStatusCommand represents the command to update order status
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.OrderRepository, publisher domain.EventPublisher) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo, publisher: publisher}
}

// Handle sets the order status. Only the value is validated: any status
// may follow any other, including completed -> created.
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	id, err := uuid.Parse(cmd.OrderID)
	if err != nil {
		return nil, apperror.Validation("invalid order id %q", cmd.OrderID)
	}

	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return nil, apperror.Validation("invalid status %q", cmd.Status)
	}

	order, err := h.repo.UpdateStatus(ctx, id, status, timeNow())
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, apperror.NotFound("order %s not found", id)
	}
	if err != nil {
		return nil, apperror.Internal("failed to update order status", err)
	}

	logger.Info(ctx).
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("Order status updated")

	if h.publisher != nil {
		if err := h.publisher.PublishOrderStatusChanged(ctx, order); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", order.ID.String()).Msg("Failed to publish status change")
		}
	}

	return order, nil
}
