// Package testutil provides in-memory repositories and container helpers
// for use case, handler and adapter tests.
package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	idempotencydomain "github.com/tair/pos-ledger/internal/idempotency/domain"
	inventorydomain "github.com/tair/pos-ledger/internal/inventory/domain"
	orderdomain "github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/money"
)

type inventoryKey struct{ location, item string }

// InventoryRepository is a mutex-guarded inventory store
type InventoryRepository struct {
	mu      sync.Mutex
	records map[inventoryKey]inventorydomain.Inventory
	// FailOn makes mutations for the given item return this error
	FailOn map[string]error
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		records: make(map[inventoryKey]inventorydomain.Inventory),
		FailOn:  make(map[string]error),
	}
}

// Seed sets the quantity of a record directly
func (r *InventoryRepository) Seed(locationID, itemID string, qty decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	r.records[inventoryKey{locationID, itemID}] = inventorydomain.Inventory{
		LocationID: locationID, ItemID: itemID, Quantity: qty, Version: 1,
		CreatedAt: now, UpdatedAt: now,
	}
}

func (r *InventoryRepository) IncrementOrCreate(_ context.Context, locationID, itemID string, delta decimal.Decimal) (*inventorydomain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailOn[itemID]; err != nil {
		return nil, err
	}
	k := inventoryKey{locationID, itemID}
	now := time.Now().UTC()
	inv, ok := r.records[k]
	if !money.InRange(delta) || !money.InRange(inv.Quantity.Add(delta)) {
		return nil, inventorydomain.ErrQuantityOutOfRange
	}
	if !ok {
		inv = inventorydomain.Inventory{LocationID: locationID, ItemID: itemID, Quantity: delta, Version: 1, CreatedAt: now}
	} else {
		inv.Quantity = inv.Quantity.Add(delta)
		inv.Version++
	}
	inv.UpdatedAt = now
	r.records[k] = inv
	return &inv, nil
}

func (r *InventoryRepository) IncrementIfAtLeast(_ context.Context, locationID, itemID string, delta, minimum decimal.Decimal) (*inventorydomain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailOn[itemID]; err != nil {
		return nil, err
	}
	k := inventoryKey{locationID, itemID}
	inv, ok := r.records[k]
	if !ok || inv.Quantity.LessThan(minimum) {
		return nil, inventorydomain.ErrInsufficientStock
	}
	inv.Quantity = inv.Quantity.Add(delta)
	inv.Version++
	inv.UpdatedAt = time.Now().UTC()
	r.records[k] = inv
	return &inv, nil
}

func (r *InventoryRepository) Get(_ context.Context, locationID, itemID string) (*inventorydomain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.records[inventoryKey{locationID, itemID}]
	if !ok {
		return nil, inventorydomain.ErrInventoryNotFound
	}
	return &inv, nil
}

func (r *InventoryRepository) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]inventorydomain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventorydomain.Inventory
	for k, inv := range r.records {
		if k.location == locationID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return page(out, offset, limit), nil
}

// Quantity returns the current quantity, zero when absent
func (r *InventoryRepository) Quantity(locationID, itemID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[inventoryKey{locationID, itemID}].Quantity
}

// IdempotencyRepository keeps records in a map and honours expiry lazily
type IdempotencyRepository struct {
	mu      sync.Mutex
	records map[string]idempotencydomain.Record
	Now     func() time.Time
}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{
		records: make(map[string]idempotencydomain.Record),
		Now:     time.Now,
	}
}

func (r *IdempotencyRepository) Get(_ context.Context, key string) (*idempotencydomain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok || rec.Expired(r.Now()) {
		return nil, idempotencydomain.ErrNotFound
	}
	return &rec, nil
}

func (r *IdempotencyRepository) CreateIfAbsent(_ context.Context, key, endpoint, userID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.Now()
	if rec, ok := r.records[key]; ok && !rec.Expired(now) {
		return false, nil
	}
	r.records[key] = idempotencydomain.Record{
		Key: key, Endpoint: endpoint, UserID: userID,
		State: idempotencydomain.StateProcessing, CreatedAt: now, ExpiresAt: now.Add(ttl),
	}
	return true, nil
}

func (r *IdempotencyRepository) SetResponse(_ context.Context, key string, response json.RawMessage, ttl time.Duration) (*idempotencydomain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, idempotencydomain.ErrNotFound
	}
	rec.State = idempotencydomain.StateDone
	rec.Response = append(json.RawMessage(nil), response...)
	rec.ExpiresAt = r.Now().Add(ttl)
	r.records[key] = rec
	return &rec, nil
}

func (r *IdempotencyRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[key]; ok && rec.State == idempotencydomain.StateProcessing {
		delete(r.records, key)
	}
	return nil
}

func (r *IdempotencyRepository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, rec := range r.records {
		if rec.Expired(now) {
			delete(r.records, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records, expired ones included
func (r *IdempotencyRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// OrderRepository keeps orders in insertion order
type OrderRepository struct {
	mu     sync.Mutex
	orders []orderdomain.Order
	// CreateErr makes Create fail when set
	CreateErr error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(_ context.Context, order *orderdomain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if order.IdempotencyKey != nil {
		for _, o := range r.orders {
			if o.IdempotencyKey != nil && *o.IdempotencyKey == *order.IdempotencyKey {
				return orderdomain.ErrDuplicateIdempotencyKey
			}
		}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders = append(r.orders, cloneOrder(*order))
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id uuid.UUID) (*orderdomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, orderdomain.ErrOrderNotFound
}

func (r *OrderRepository) FindByIdempotencyKey(_ context.Context, key string) (*orderdomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, orderdomain.ErrOrderNotFound
}

func (r *OrderRepository) List(_ context.Context, f orderdomain.ListFilter) ([]orderdomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdomain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if f.LocationID != "" && o.LocationID != f.LocationID {
			continue
		}
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Skip, f.Limit), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status orderdomain.Status, at time.Time) (*orderdomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = at
			c := cloneOrder(r.orders[i])
			return &c, nil
		}
	}
	return nil, orderdomain.ErrOrderNotFound
}

// Count returns the number of stored orders
func (r *OrderRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func cloneOrder(o orderdomain.Order) orderdomain.Order {
	o.Lines = append([]orderdomain.OrderLine(nil), o.Lines...)
	return o
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
