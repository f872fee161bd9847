package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/pkg/money"
)

// Quantities are stored as integer hundredths so HINCRBY stays exact.
// Keys share a {location} hash tag so both keys of a script land on one slot.
// Lua numbers are doubles, so amounts travel and compare as decimal strings.
var incrementOrCreateScript = redis.NewScript(`
local key = KEYS[1]
local now = ARGV[2]
if redis.call('EXISTS', key) == 0 then
  redis.call('HSET', key, 'quantity', ARGV[1], 'reserved', 0, 'version', 1, 'created_at', now, 'updated_at', now)
else
  redis.call('HINCRBY', key, 'quantity', ARGV[1])
  local digits = string.gsub(redis.call('HGET', key, 'quantity'), '^-', '')
  if #digits > tonumber(ARGV[4]) then
    redis.call('HINCRBY', key, 'quantity', ARGV[5])
    return 'out_of_range'
  end
  redis.call('HINCRBY', key, 'version', 1)
  redis.call('HSET', key, 'updated_at', now)
end
redis.call('SADD', KEYS[2], ARGV[3])
return redis.call('HMGET', key, 'quantity', 'reserved', 'version', 'created_at', 'updated_at')
`)

// ARGV[2] is a non-negative integer string
var incrementIfAtLeastScript = redis.NewScript(`
local function at_least(a, b)
  if string.sub(a, 1, 1) == '-' then
    return false
  end
  if #a ~= #b then
    return #a > #b
  end
  return a >= b
end
local key = KEYS[1]
local current = redis.call('HGET', key, 'quantity')
if not current or not at_least(current, ARGV[2]) then
  return false
end
redis.call('HINCRBY', key, 'quantity', ARGV[1])
redis.call('HINCRBY', key, 'version', 1)
redis.call('HSET', key, 'updated_at', ARGV[3])
return redis.call('HMGET', key, 'quantity', 'reserved', 'version', 'created_at', 'updated_at')
`)

// maxQuantityDigits is the digit count of the largest stored quantity in
// hundredths (MaxAmount has 16 integer digits plus 2 fractional)
const maxQuantityDigits = 18

var recordFields = []string{"quantity", "reserved", "version", "created_at", "updated_at"}

// RedisInventoryRepository stores stock records as Redis hashes
type RedisInventoryRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisInventoryRepository(client *redis.Client) *RedisInventoryRepository {
	return &RedisInventoryRepository{client: client, prefix: "inventory"}
}

func (r *RedisInventoryRepository) recordKey(locationID, itemID string) string {
	return fmt.Sprintf("%s:{%s}:item:%s", r.prefix, locationID, itemID)
}

func (r *RedisInventoryRepository) indexKey(locationID string) string {
	return fmt.Sprintf("%s:{%s}:items", r.prefix, locationID)
}

func (r *RedisInventoryRepository) IncrementOrCreate(ctx context.Context, locationID, itemID string, delta decimal.Decimal) (*domain.Inventory, error) {
	hundredths, err := money.ToHundredths(delta)
	if err != nil {
		return nil, fmt.Errorf("increment or create %s/%s: %w: %v", locationID, itemID, domain.ErrQuantityOutOfRange, err)
	}
	now := time.Now().UTC().UnixNano()
	res, err := incrementOrCreateScript.Run(ctx, r.client,
		[]string{r.recordKey(locationID, itemID), r.indexKey(locationID)},
		hundredths, now, itemID, maxQuantityDigits, -hundredths,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("increment or create %s/%s: %w", locationID, itemID, err)
	}
	return decodeScriptResult(locationID, itemID, res)
}

func (r *RedisInventoryRepository) IncrementIfAtLeast(ctx context.Context, locationID, itemID string, delta, minimum decimal.Decimal) (*domain.Inventory, error) {
	hundredths, err := money.ToHundredths(delta)
	if err != nil {
		return nil, fmt.Errorf("conditional increment %s/%s: %w: %v", locationID, itemID, domain.ErrQuantityOutOfRange, err)
	}
	minHundredths, err := money.ToHundredths(minimum)
	if err != nil || minHundredths < 0 {
		return nil, fmt.Errorf("conditional increment %s/%s: minimum %s: %w", locationID, itemID, minimum, domain.ErrQuantityOutOfRange)
	}
	now := time.Now().UTC().UnixNano()
	res, err := incrementIfAtLeastScript.Run(ctx, r.client,
		[]string{r.recordKey(locationID, itemID)},
		hundredths, minHundredths, now,
	).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrInsufficientStock
	}
	if err != nil {
		return nil, fmt.Errorf("conditional increment %s/%s: %w", locationID, itemID, err)
	}
	return decodeScriptResult(locationID, itemID, res)
}

func (r *RedisInventoryRepository) Get(ctx context.Context, locationID, itemID string) (*domain.Inventory, error) {
	res, err := r.client.HMGet(ctx, r.recordKey(locationID, itemID), recordFields...).Result()
	if err != nil {
		return nil, err
	}
	if res[0] == nil {
		return nil, domain.ErrInventoryNotFound
	}
	return parseRecord(locationID, itemID, res)
}

func (r *RedisInventoryRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]domain.Inventory, error) {
	items, err := r.client.SMembers(ctx, r.indexKey(locationID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(items)

	if offset >= len(items) {
		return []domain.Inventory{}, nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(items))
	for i, itemID := range items {
		cmds[i] = pipe.HMGet(ctx, r.recordKey(locationID, itemID), recordFields...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	inventories := make([]domain.Inventory, 0, len(items))
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) == 0 || vals[0] == nil {
			continue
		}
		inv, err := parseRecord(locationID, items[i], vals)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, *inv)
	}
	return inventories, nil
}

func decodeScriptResult(locationID, itemID string, res interface{}) (*domain.Inventory, error) {
	switch v := res.(type) {
	case []interface{}:
		return parseRecord(locationID, itemID, v)
	case string:
		if v == "out_of_range" {
			return nil, domain.ErrQuantityOutOfRange
		}
	}
	return nil, fmt.Errorf("unexpected script reply %T", res)
}

func parseRecord(locationID, itemID string, vals []interface{}) (*domain.Inventory, error) {
	if len(vals) != len(recordFields) {
		return nil, fmt.Errorf("unexpected inventory hash shape: %d fields", len(vals))
	}
	ints := make([]int64, len(vals))
	for i, v := range vals {
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case int64:
			s = strconv.FormatInt(t, 10)
		case nil:
			s = "0"
		default:
			return nil, fmt.Errorf("unexpected %s value %T", recordFields[i], v)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", recordFields[i], err)
		}
		ints[i] = n
	}
	return &domain.Inventory{
		LocationID:       locationID,
		ItemID:           itemID,
		Quantity:         money.FromHundredths(ints[0]),
		ReservedQuantity: money.FromHundredths(ints[1]),
		Version:          ints[2],
		CreatedAt:        time.Unix(0, ints[3]).UTC(),
		UpdatedAt:        time.Unix(0, ints[4]).UTC(),
	}, nil
}
