package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned for absent or expired keys
var ErrNotFound = errors.New("idempotency record not found")

// State of an idempotency record
type State string

const (
	// StateProcessing marks a key held by an in-flight request
	StateProcessing State = "processing"
	// StateDone marks a key whose response has been recorded
	StateDone State = "done"
)

// Record is the lock/response entry for one client-supplied key.
// Response is only meaningful in StateDone; use Done to read it.
type Record struct {
	Key       string
	Endpoint  string
	UserID    string
	State     State
	Response  json.RawMessage
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Done returns the stored response and its expiry when the record is finished
func (r *Record) Done() (json.RawMessage, time.Time, bool) {
	if r.State != StateDone {
		return nil, time.Time{}, false
	}
	return r.Response, r.ExpiresAt, true
}

// Expired reports whether the record is past its deadline at now
func (r *Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Repository is a keyed compare-and-swap store for idempotency records
type Repository interface {
	Get(ctx context.Context, key string) (*Record, error)
	// CreateIfAbsent inserts a processing record that expires after ttl.
	// It returns false, nil when a live record already holds the key.
	CreateIfAbsent(ctx context.Context, key, endpoint, userID string, ttl time.Duration) (bool, error)
	// SetResponse moves the record to done. Calling it twice overwrites.
	SetResponse(ctx context.Context, key string, response json.RawMessage, ttl time.Duration) (*Record, error)
	// Delete drops a processing record so the key can be retried at once
	Delete(ctx context.Context, key string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// OrderResponse is the payload stored for a finished create-order request
type OrderResponse struct {
	OrderID string `json:"order_id"`
}
