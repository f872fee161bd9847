package query

import (
	"context"

	"github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	LocationID string
	UserID     string
	Status     string
	Skip       int
	Limit      int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle returns orders newest first with offset pagination
func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	filter := domain.ListFilter{
		LocationID: query.LocationID,
		UserID:     query.UserID,
		Skip:       query.Skip,
		Limit:      query.Limit,
	}

	if query.Status != "" {
		status, err := domain.ParseStatus(query.Status)
		if err != nil {
			return nil, apperror.Validation("invalid status %q", query.Status)
		}
		filter.Status = status
	}

	if filter.Skip < 0 {
		return nil, apperror.Validation("skip must be >= 0")
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	orders, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to list orders", err)
	}

	return orders, nil
}
