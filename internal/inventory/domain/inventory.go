package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientStock is returned when a conditional decrement finds
	// less stock than required. The stored record is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInventoryNotFound is returned when no record exists for the key
	ErrInventoryNotFound = errors.New("inventory record not found")
	// ErrQuantityOutOfRange is returned when a delta or the resulting
	// quantity does not fit the stored precision. The record is unchanged.
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)

// Inventory is the stock record of one item at one location
type Inventory struct {
	LocationID       string          `json:"location_id" gorm:"primaryKey;size:64"`
	ItemID           string          `json:"item_id" gorm:"primaryKey;size:64"`
	Quantity         decimal.Decimal `json:"quantity" gorm:"type:numeric(18,2);not null;default:0;check:chk_inventory_quantity_non_negative,quantity >= 0"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity" gorm:"type:numeric(18,2);not null;default:0"`
	Version          int64           `json:"version" gorm:"not null;default:1"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventory_records"
}

// InventoryRepository defines the contract for inventory data access.
// Both mutations must be single atomic operations in the storage engine.
type InventoryRepository interface {
	// IncrementOrCreate adds delta to the record, creating it with
	// quantity=delta and version=1 when absent.
	IncrementOrCreate(ctx context.Context, locationID, itemID string, delta decimal.Decimal) (*Inventory, error)
	// IncrementIfAtLeast adds delta only when the current quantity is at
	// least minimum, otherwise it returns ErrInsufficientStock.
	IncrementIfAtLeast(ctx context.Context, locationID, itemID string, delta, minimum decimal.Decimal) (*Inventory, error)
	Get(ctx context.Context, locationID, itemID string) (*Inventory, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]Inventory, error)
}

// EventPublisher receives successful adjustments
type EventPublisher interface {
	PublishInventoryAdjusted(ctx context.Context, inv *Inventory, delta decimal.Decimal) error
}
