package command

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/money"
)

// StockReserver exposes the two halves of a reservation: a conditional
// decrement and its compensating increment.
type StockReserver struct {
	repo domain.InventoryRepository
}

// NewStockReserver creates a new stock reserver
func NewStockReserver(repo domain.InventoryRepository) *StockReserver {
	return &StockReserver{repo: repo}
}

// Reserve takes qty units out of stock or fails without touching the record
func (s *StockReserver) Reserve(ctx context.Context, locationID, itemID string, qty decimal.Decimal) error {
	if qty.Sign() <= 0 {
		return apperror.Validation("reserved quantity must be positive")
	}
	if !money.InRange(qty) {
		return apperror.Validation("quantity of item %s must be smaller than %s", itemID, money.MaxAmount)
	}
	_, err := s.repo.IncrementIfAtLeast(ctx, locationID, itemID, qty.Neg(), qty)
	if errors.Is(err, domain.ErrInsufficientStock) {
		return apperror.InsufficientStock(itemID, err)
	}
	if errors.Is(err, domain.ErrQuantityOutOfRange) {
		return apperror.Validation("quantity of item %s is out of range", itemID)
	}
	if err != nil {
		return apperror.Internal("failed to reserve stock", err)
	}
	return nil
}

// Release puts qty units back
func (s *StockReserver) Release(ctx context.Context, locationID, itemID string, qty decimal.Decimal) error {
	if _, err := s.repo.IncrementOrCreate(ctx, locationID, itemID, qty); err != nil {
		return apperror.Internal("failed to release stock", err)
	}
	return nil
}
