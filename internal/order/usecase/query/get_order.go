package query

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
)

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	ID string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	id, err := uuid.Parse(query.ID)
	if err != nil {
		return nil, apperror.Validation("invalid order id %q", query.ID)
	}

	order, err := h.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, apperror.NotFound("order %s not found", id)
	}
	if err != nil {
		return nil, apperror.Internal("failed to get order", err)
	}

	return order, nil
}
