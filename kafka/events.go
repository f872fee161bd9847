package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeInventoryAdjusted  = "inventory.adjusted"
	EventTypeInventoryRestock   = "inventory.restock"
)

// Kafka topics
const (
	TopicOrders           = "pos.orders"
	TopicInventory        = "pos.inventory"
	TopicInventoryRestock = "pos.inventory-restock"
)

// OrderLine is one line of an order event
type OrderLine struct {
	ItemID    string `json:"item_id"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderEvent is published on order creation and on each status change
type OrderEvent struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OrderID    string      `json:"order_id"`
	LocationID string      `json:"location_id"`
	UserID     string      `json:"user_id"`
	Status     string      `json:"status"`
	Total      string      `json:"total"`
	Items      []OrderLine `json:"items,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// InventoryAdjustedEvent is published after every successful adjustment
type InventoryAdjustedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	LocationID string    `json:"location_id"`
	ItemID     string    `json:"item_id"`
	Delta      string    `json:"delta"`
	Quantity   string    `json:"quantity"`
	Version    int64     `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
}

// RestockEvent is consumed from the restock feed; delta may be a JSON
// number or string
type RestockEvent struct {
	EventID    string          `json:"event_id"`
	LocationID string          `json:"location_id"`
	ItemID     string          `json:"item_id"`
	Delta      decimal.Decimal `json:"delta"`
}
