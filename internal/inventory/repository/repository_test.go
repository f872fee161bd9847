package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/internal/inventory/repository"
	"github.com/tair/pos-ledger/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRedisRepo(t *testing.T) domain.InventoryRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return repository.NewTracingInventoryRepository(repository.NewRedisInventoryRepository(client), "redis")
}

func newPostgresRepo(t *testing.T) domain.InventoryRepository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	repo := repository.NewGormInventoryRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewTracingInventoryRepository(repo, "postgresql")
}

// runContract exercises the atomic mutation contract against one backend
func runContract(t *testing.T, repo domain.InventoryRepository) {
	ctx := context.Background()

	t.Run("increment creates then adds", func(t *testing.T) {
		inv, err := repo.IncrementOrCreate(ctx, "S", "P", dec("10"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if !inv.Quantity.Equal(dec("10")) || inv.Version != 1 {
			t.Fatalf("created quantity=%s version=%d", inv.Quantity, inv.Version)
		}

		inv, err = repo.IncrementOrCreate(ctx, "S", "P", dec("0.25"))
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if !inv.Quantity.Equal(dec("10.25")) || inv.Version != 2 {
			t.Fatalf("incremented quantity=%s version=%d", inv.Quantity, inv.Version)
		}
	})

	t.Run("conditional decrement", func(t *testing.T) {
		inv, err := repo.IncrementIfAtLeast(ctx, "S", "P", dec("-3.25"), dec("3.25"))
		if err != nil {
			t.Fatalf("decrement: %v", err)
		}
		if !inv.Quantity.Equal(dec("7")) || inv.Version != 3 {
			t.Fatalf("decremented quantity=%s version=%d", inv.Quantity, inv.Version)
		}

		_, err = repo.IncrementIfAtLeast(ctx, "S", "P", dec("-20"), dec("20"))
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}

		got, err := repo.Get(ctx, "S", "P")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.Quantity.Equal(dec("7")) || got.Version != 3 {
			t.Fatalf("record changed after failed decrement: quantity=%s version=%d", got.Quantity, got.Version)
		}
	})

	t.Run("decrement of missing record", func(t *testing.T) {
		_, err := repo.IncrementIfAtLeast(ctx, "S", "missing", dec("-1"), dec("1"))
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if _, err := repo.Get(ctx, "S", "missing"); !errors.Is(err, domain.ErrInventoryNotFound) {
			t.Fatalf("expected ErrInventoryNotFound, got %v", err)
		}
	})

	t.Run("concurrent adjustments", func(t *testing.T) {
		if _, err := repo.IncrementOrCreate(ctx, "C", "P", dec("50")); err != nil {
			t.Fatalf("seed: %v", err)
		}

		const workers = 20
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var err error
				if i%2 == 0 {
					_, err = repo.IncrementOrCreate(ctx, "C", "P", dec("1.50"))
				} else {
					_, err = repo.IncrementIfAtLeast(ctx, "C", "P", dec("-1"), dec("1"))
				}
				if err != nil {
					t.Errorf("worker %d: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		got, err := repo.Get(ctx, "C", "P")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		// 50 + 10*1.50 - 10*1 = 55
		if !got.Quantity.Equal(dec("55")) {
			t.Errorf("quantity = %s, want 55", got.Quantity)
		}
		if got.Version != 1+workers {
			t.Errorf("version = %d, want %d", got.Version, 1+workers)
		}
	})

	t.Run("increment past the stored precision", func(t *testing.T) {
		if _, err := repo.IncrementOrCreate(ctx, "R", "P", dec("9999999999999999")); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.IncrementOrCreate(ctx, "R", "P", dec("1"))
		if !errors.Is(err, domain.ErrQuantityOutOfRange) {
			t.Fatalf("expected ErrQuantityOutOfRange, got %v", err)
		}
		got, err := repo.Get(ctx, "R", "P")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.Quantity.Equal(dec("9999999999999999")) || got.Version != 1 {
			t.Fatalf("record changed after overflow: quantity=%s version=%d", got.Quantity, got.Version)
		}
	})

	t.Run("list by location", func(t *testing.T) {
		for _, item := range []string{"b", "a", "c"} {
			if _, err := repo.IncrementOrCreate(ctx, "L", item, dec("1")); err != nil {
				t.Fatalf("seed %s: %v", item, err)
			}
		}
		items, err := repo.ListByLocation(ctx, "L", 2, 1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 || items[0].ItemID != "b" || items[1].ItemID != "c" {
			t.Fatalf("unexpected page: %+v", items)
		}
	})
}

func TestRedisInventoryRepository(t *testing.T) {
	runContract(t, newRedisRepo(t))
}

func TestGormInventoryRepository(t *testing.T) {
	runContract(t, newPostgresRepo(t))
}

func TestRedisInventoryRepository_OversizedAmounts(t *testing.T) {
	ctx := context.Background()
	repo := newRedisRepo(t)
	if _, err := repo.IncrementOrCreate(ctx, "S", "P", dec("10")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"huge negative delta", func() error {
			_, err := repo.IncrementIfAtLeast(ctx, "S", "P", dec("-184467440737095511.16"), dec("184467440737095511.16"))
			return err
		}},
		{"huge positive delta", func() error {
			_, err := repo.IncrementOrCreate(ctx, "S", "P", dec("100000000000000000000"))
			return err
		}},
		{"huge delta on a fresh key", func() error {
			_, err := repo.IncrementOrCreate(ctx, "S", "fresh", dec("100000000000000000000"))
			return err
		}},
		{"three fractional digits", func() error {
			_, err := repo.IncrementOrCreate(ctx, "S", "P", dec("0.001"))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, domain.ErrQuantityOutOfRange) {
				t.Fatalf("expected ErrQuantityOutOfRange, got %v", err)
			}
		})
	}

	got, err := repo.Get(ctx, "S", "P")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Quantity.Equal(dec("10")) || got.Version != 1 {
		t.Errorf("record changed: quantity=%s version=%d", got.Quantity, got.Version)
	}
	if _, err := repo.Get(ctx, "S", "fresh"); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("rejected create left a record: %v", err)
	}
}

// Stock past 2^53 hundredths is beyond exact double range; the sufficiency
// check must still compare exactly.
func TestRedisInventoryRepository_ExactComparisonOfLargeStock(t *testing.T) {
	ctx := context.Background()
	repo := newRedisRepo(t)
	// 2^53 hundredths; 2^53+1 rounds down to it as a double
	if _, err := repo.IncrementOrCreate(ctx, "S", "P", dec("90071992547409.92")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := repo.IncrementIfAtLeast(ctx, "S", "P", dec("-90071992547409.93"), dec("90071992547409.93"))
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("one hundredth short: expected ErrInsufficientStock, got %v", err)
	}
	inv, err := repo.IncrementIfAtLeast(ctx, "S", "P", dec("-90071992547409.92"), dec("90071992547409.92"))
	if err != nil {
		t.Fatalf("exact amount: %v", err)
	}
	if !inv.Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0", inv.Quantity)
	}
}
