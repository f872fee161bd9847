package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-ledger/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// TracingOrderRepository wraps an OrderRepository with spans
type TracingOrderRepository struct {
	next domain.OrderRepository
}

func NewTracingOrderRepository(next domain.OrderRepository) *TracingOrderRepository {
	return &TracingOrderRepository{next: next}
}

func (r *TracingOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("order.id", order.ID.String()),
			attribute.String("order.location_id", order.LocationID),
			attribute.Int("order.lines", len(order.Lines)),
			attribute.String("order.total", order.Total.String()),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, order); err != nil {
		if !errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			addDBErrorToSpan(span, err)
		}
		return err
	}
	return nil
}

func (r *TracingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("order.id", id.String())),
	)
	defer span.End()

	order, err := r.next.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			addDBErrorToSpan(span, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("order.status", string(order.Status)))
	return order, nil
}

func (r *TracingOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByIdempotencyKey",
		trace.WithAttributes(attribute.String("order.idempotency_key", key)),
	)
	defer span.End()

	order, err := r.next.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			addDBErrorToSpan(span, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", order.ID.String()))
	return order, nil
}

func (r *TracingOrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.String("filter.location_id", filter.LocationID),
			attribute.String("filter.user_id", filter.UserID),
			attribute.String("filter.status", string(filter.Status)),
			attribute.Int("query.skip", filter.Skip),
			attribute.Int("query.limit", filter.Limit),
		),
	)
	defer span.End()

	orders, err := r.next.List(ctx, filter)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *TracingOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, at time.Time) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateStatus",
		trace.WithAttributes(
			attribute.String("order.id", id.String()),
			attribute.String("order.status", string(status)),
		),
	)
	defer span.End()

	order, err := r.next.UpdateStatus(ctx, id, status, at)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			addDBErrorToSpan(span, err)
		}
		return nil, err
	}
	return order, nil
}

func addDBErrorToSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
