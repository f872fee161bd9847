package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound is returned when no order matches
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateIdempotencyKey is returned by Create when another order
	// already carries the same idempotency key
	ErrDuplicateIdempotencyKey = errors.New("order with idempotency key already exists")
)

// Status is the lifecycle label of an order
type Status string

const (
	StatusCreated   Status = "created"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusCreated:   true,
	StatusConfirmed: true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ParseStatus validates s against the known statuses
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// OrderLine is one priced item of an order
type OrderLine struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   uuid.UUID       `json:"-" gorm:"type:uuid;not null;index"`
	Position  int             `json:"-" gorm:"not null"`
	ItemID    string          `json:"item_id" gorm:"size:64;not null"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:numeric(18,2);not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(18,2);not null"`
}

// TableName specifies the table name
func (OrderLine) TableName() string {
	return "order_lines"
}

// Amount is quantity times unit price
func (l OrderLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Order is immutable after creation except for Status and UpdatedAt.
// Amounts keep four fractional digits: a product of two 2-digit values.
type Order struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	LocationID     string          `json:"location_id" gorm:"size:64;not null;index:idx_orders_location_created,priority:1"`
	UserID         string          `json:"user_id" gorm:"size:255;not null;index:idx_orders_user_created,priority:1"`
	Lines          []OrderLine     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(20,4);not null"`
	Tax            decimal.Decimal `json:"tax" gorm:"type:numeric(20,4);not null;default:0"`
	Total          decimal.Decimal `json:"total" gorm:"type:numeric(20,4);not null"`
	Status         Status          `json:"status" gorm:"size:16;not null;index"`
	IdempotencyKey *string         `json:"idempotency_key,omitempty" gorm:"size:255;uniqueIndex:idx_orders_idempotency_key"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;index:idx_orders_location_created,priority:2;index:idx_orders_user_created,priority:2"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Price sets subtotal and total from the lines. Tax is not computed.
func (o *Order) Price() {
	subtotal := decimal.Zero
	for _, l := range o.Lines {
		subtotal = subtotal.Add(l.Amount())
	}
	o.Subtotal = subtotal
	o.Tax = decimal.Zero
	o.Total = subtotal.Add(o.Tax)
}

// ListFilter selects orders for listing; empty fields do not filter
type ListFilter struct {
	LocationID string
	UserID     string
	Status     Status
	Skip       int
	Limit      int
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	// Create inserts the order with its lines in one transaction
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	// List returns orders newest first
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, at time.Time) (*Order, error)
}

// StockReserver takes and returns stock for a single line
type StockReserver interface {
	Reserve(ctx context.Context, locationID, itemID string, qty decimal.Decimal) error
	Release(ctx context.Context, locationID, itemID string, qty decimal.Decimal) error
}

// EventPublisher receives order lifecycle events
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *Order) error
	PublishOrderStatusChanged(ctx context.Context, order *Order) error
}
