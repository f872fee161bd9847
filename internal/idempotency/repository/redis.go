package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pos-ledger/internal/idempotency/domain"
)

var deleteProcessingScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then return 0 end
local rec = cjson.decode(v)
if rec.state ~= 'processing' then return 0 end
return redis.call('DEL', KEYS[1])
`)

type redisRecord struct {
	Endpoint  string          `json:"endpoint"`
	UserID    string          `json:"user_id"`
	State     domain.State    `json:"state"`
	Response  json.RawMessage `json:"response,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// RedisIdempotencyRepository keeps records as JSON strings whose key TTL
// matches ExpiresAt, so Redis expires them natively.
type RedisIdempotencyRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisIdempotencyRepository(client *redis.Client) *RedisIdempotencyRepository {
	return &RedisIdempotencyRepository{client: client, prefix: "idempotency:"}
}

func (r *RedisIdempotencyRepository) Get(ctx context.Context, key string) (*domain.Record, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rr redisRecord
	if err := json.Unmarshal(raw, &rr); err != nil {
		return nil, fmt.Errorf("decode idempotency record %s: %w", key, err)
	}
	return &domain.Record{
		Key:       key,
		Endpoint:  rr.Endpoint,
		UserID:    rr.UserID,
		State:     rr.State,
		Response:  rr.Response,
		CreatedAt: rr.CreatedAt,
		ExpiresAt: rr.ExpiresAt,
	}, nil
}

// CreateIfAbsent is SET NX PX
func (r *RedisIdempotencyRepository) CreateIfAbsent(ctx context.Context, key, endpoint, userID string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	payload, err := json.Marshal(redisRecord{
		Endpoint:  endpoint,
		UserID:    userID,
		State:     domain.StateProcessing,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, r.prefix+key, payload, ttl).Result()
}

// SetResponse is only called by the holder of the processing record, so
// the read and the SET XX do not race with another writer of the key.
func (r *RedisIdempotencyRepository) SetResponse(ctx context.Context, key string, response json.RawMessage, ttl time.Duration) (*domain.Record, error) {
	rec, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rec.State = domain.StateDone
	rec.Response = response
	rec.ExpiresAt = time.Now().UTC().Add(ttl)

	payload, err := json.Marshal(redisRecord{
		Endpoint:  rec.Endpoint,
		UserID:    rec.UserID,
		State:     rec.State,
		Response:  rec.Response,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	err = r.client.SetArgs(ctx, r.prefix+key, payload, redis.SetArgs{Mode: "XX", TTL: ttl}).Err()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RedisIdempotencyRepository) Delete(ctx context.Context, key string) error {
	return deleteProcessingScript.Run(ctx, r.client, []string{r.prefix + key}).Err()
}

// PurgeExpired is a no-op: key TTLs already remove expired records
func (r *RedisIdempotencyRepository) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
