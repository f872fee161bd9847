package query

import (
	"context"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListInventoryQuery represents the query to list the stock of a location
type ListInventoryQuery struct {
	LocationID string
	Limit      int
	Offset     int
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, query ListInventoryQuery) ([]domain.Inventory, error) {
	if query.LocationID == "" {
		return nil, apperror.Validation("location_id is required")
	}
	if query.Offset < 0 {
		return nil, apperror.Validation("offset must be >= 0")
	}

	if query.Limit <= 0 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}

	inventories, err := h.repo.ListByLocation(ctx, query.LocationID, query.Limit, query.Offset)
	if err != nil {
		return nil, apperror.Internal("failed to list inventories", err)
	}

	return inventories, nil
}
