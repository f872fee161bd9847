package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-ledger/internal/idempotency/domain"
)

var tracer = otel.Tracer("idempotency-repository")

// TracingRepository wraps a domain.Repository with spans
type TracingRepository struct {
	next    domain.Repository
	backend string
}

func NewTracingRepository(next domain.Repository, backend string) *TracingRepository {
	return &TracingRepository{next: next, backend: backend}
}

func (r *TracingRepository) start(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", r.backend),
		attribute.String("idempotency.key", key),
	))
}

func (r *TracingRepository) Get(ctx context.Context, key string) (*domain.Record, error) {
	ctx, span := r.start(ctx, "repository.Get", key)
	defer span.End()

	rec, err := r.next.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			recordError(span, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("idempotency.state", string(rec.State)))
	return rec, nil
}

func (r *TracingRepository) CreateIfAbsent(ctx context.Context, key, endpoint, userID string, ttl time.Duration) (bool, error) {
	ctx, span := r.start(ctx, "repository.CreateIfAbsent", key)
	defer span.End()

	created, err := r.next.CreateIfAbsent(ctx, key, endpoint, userID, ttl)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	span.SetAttributes(
		attribute.String("idempotency.endpoint", endpoint),
		attribute.Bool("idempotency.created", created),
	)
	return created, nil
}

func (r *TracingRepository) SetResponse(ctx context.Context, key string, response json.RawMessage, ttl time.Duration) (*domain.Record, error) {
	ctx, span := r.start(ctx, "repository.SetResponse", key)
	defer span.End()

	rec, err := r.next.SetResponse(ctx, key, response, ttl)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("idempotency.expires_at", rec.ExpiresAt.Format(time.RFC3339)))
	return rec, nil
}

func (r *TracingRepository) Delete(ctx context.Context, key string) error {
	ctx, span := r.start(ctx, "repository.Delete", key)
	defer span.End()

	if err := r.next.Delete(ctx, key); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.PurgeExpired",
		trace.WithAttributes(attribute.String("db.system", r.backend)),
	)
	defer span.End()

	n, err := r.next.PurgeExpired(ctx, now)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.purged", n))
	return n, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
