package query

import (
	"context"
	"errors"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
)

// GetInventoryQuery represents the query to get one stock record
type GetInventoryQuery struct {
	LocationID string
	ItemID     string
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, query GetInventoryQuery) (*domain.Inventory, error) {
	if query.LocationID == "" || query.ItemID == "" {
		return nil, apperror.Validation("location_id and item_id are required")
	}

	inventory, err := h.repo.Get(ctx, query.LocationID, query.ItemID)
	if errors.Is(err, domain.ErrInventoryNotFound) {
		return nil, apperror.NotFound("no inventory for item %s at location %s", query.ItemID, query.LocationID)
	}
	if err != nil {
		return nil, apperror.Internal("failed to get inventory", err)
	}

	return inventory, nil
}
