package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-ledger/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository wraps any InventoryRepository with spans
type TracingInventoryRepository struct {
	next    domain.InventoryRepository
	backend string
}

// NewTracingInventoryRepository creates a new repository with tracing
func NewTracingInventoryRepository(next domain.InventoryRepository, backend string) *TracingInventoryRepository {
	return &TracingInventoryRepository{next: next, backend: backend}
}

func (r *TracingInventoryRepository) start(ctx context.Context, name, locationID, itemID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", r.backend),
		attribute.String("inventory.location_id", locationID),
	)
	if itemID != "" {
		attrs = append(attrs, attribute.String("inventory.item_id", itemID))
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (r *TracingInventoryRepository) IncrementOrCreate(ctx context.Context, locationID, itemID string, delta decimal.Decimal) (*domain.Inventory, error) {
	ctx, span := r.start(ctx, "repository.IncrementOrCreate", locationID, itemID,
		attribute.String("inventory.delta", delta.String()),
	)
	defer span.End()

	inv, err := r.next.IncrementOrCreate(ctx, locationID, itemID, delta)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	setRecordAttributes(span, inv)
	return inv, nil
}

func (r *TracingInventoryRepository) IncrementIfAtLeast(ctx context.Context, locationID, itemID string, delta, minimum decimal.Decimal) (*domain.Inventory, error) {
	ctx, span := r.start(ctx, "repository.IncrementIfAtLeast", locationID, itemID,
		attribute.String("inventory.delta", delta.String()),
		attribute.String("inventory.minimum", minimum.String()),
	)
	defer span.End()

	inv, err := r.next.IncrementIfAtLeast(ctx, locationID, itemID, delta, minimum)
	if errors.Is(err, domain.ErrInsufficientStock) {
		// expected business outcome, not a storage fault
		span.SetAttributes(attribute.Bool("inventory.insufficient", true))
		return nil, err
	}
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	setRecordAttributes(span, inv)
	return inv, nil
}

func (r *TracingInventoryRepository) Get(ctx context.Context, locationID, itemID string) (*domain.Inventory, error) {
	ctx, span := r.start(ctx, "repository.Get", locationID, itemID)
	defer span.End()

	inv, err := r.next.Get(ctx, locationID, itemID)
	if err != nil {
		if !errors.Is(err, domain.ErrInventoryNotFound) {
			addDBErrorToSpan(span, err)
		}
		return nil, err
	}

	setRecordAttributes(span, inv)
	return inv, nil
}

func (r *TracingInventoryRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]domain.Inventory, error) {
	ctx, span := r.start(ctx, "repository.ListByLocation", locationID, "",
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)
	defer span.End()

	inventories, err := r.next.ListByLocation(ctx, locationID, limit, offset)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(inventories)))
	return inventories, nil
}

func setRecordAttributes(span trace.Span, inv *domain.Inventory) {
	span.SetAttributes(
		attribute.String("inventory.quantity", inv.Quantity.String()),
		attribute.Int64("inventory.version", inv.Version),
	)
}

// Helper function to add database error details to span
func addDBErrorToSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
