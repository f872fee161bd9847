package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/pos-ledger/internal/idempotency/domain"
	"github.com/tair/pos-ledger/internal/idempotency/repository"
	"github.com/tair/pos-ledger/internal/testutil"
	"github.com/tair/pos-ledger/pkg/database"
)

const endpoint = "POST /api/orders"

func runContract(t *testing.T, repo domain.Repository, expire func(time.Duration)) {
	ctx := context.Background()

	t.Run("single winner", func(t *testing.T) {
		const callers = 16
		var wins int32
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.CreateIfAbsent(ctx, "K1", endpoint, "u1", time.Minute)
				if err != nil {
					t.Errorf("CreateIfAbsent: %v", err)
					return
				}
				if created {
					atomic.AddInt32(&wins, 1)
				}
			}()
		}
		wg.Wait()
		if wins != 1 {
			t.Fatalf("winners = %d, want 1", wins)
		}

		rec, err := repo.Get(ctx, "K1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if rec.State != domain.StateProcessing || rec.UserID != "u1" || rec.Endpoint != endpoint {
			t.Fatalf("unexpected record %+v", rec)
		}
		if _, _, ok := rec.Done(); ok {
			t.Fatal("processing record must not report a response")
		}
	})

	t.Run("set response", func(t *testing.T) {
		resp, _ := json.Marshal(domain.OrderResponse{OrderID: "o-1"})
		rec, err := repo.SetResponse(ctx, "K1", resp, 24*time.Hour)
		if err != nil {
			t.Fatalf("SetResponse: %v", err)
		}
		body, expiry, ok := rec.Done()
		if !ok {
			t.Fatalf("record not done: %+v", rec)
		}
		var got domain.OrderResponse
		if err := json.Unmarshal(body, &got); err != nil || got.OrderID != "o-1" {
			t.Fatalf("response = %s (%v)", body, err)
		}
		if time.Until(expiry) < 23*time.Hour {
			t.Errorf("expiry %v is not ~24h away", expiry)
		}

		// overwrite is allowed
		if _, err := repo.SetResponse(ctx, "K1", resp, 24*time.Hour); err != nil {
			t.Fatalf("second SetResponse: %v", err)
		}

		// done records are not deleted by the failure path
		if err := repo.Delete(ctx, "K1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.Get(ctx, "K1"); err != nil {
			t.Fatalf("done record was deleted: %v", err)
		}
	})

	t.Run("set response on unknown key", func(t *testing.T) {
		_, err := repo.SetResponse(ctx, "nope", json.RawMessage(`{}`), time.Hour)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete releases processing lock", func(t *testing.T) {
		if created, err := repo.CreateIfAbsent(ctx, "K2", endpoint, "u1", time.Minute); err != nil || !created {
			t.Fatalf("create: %v %v", created, err)
		}
		if err := repo.Delete(ctx, "K2"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if created, err := repo.CreateIfAbsent(ctx, "K2", endpoint, "u2", time.Minute); err != nil || !created {
			t.Fatalf("re-create after delete: %v %v", created, err)
		}
	})

	t.Run("expired processing record is taken over", func(t *testing.T) {
		if created, err := repo.CreateIfAbsent(ctx, "K3", endpoint, "u1", 50*time.Millisecond); err != nil || !created {
			t.Fatalf("create: %v %v", created, err)
		}
		if created, _ := repo.CreateIfAbsent(ctx, "K3", endpoint, "u2", time.Minute); created {
			t.Fatal("live record must not be taken over")
		}

		expire(100 * time.Millisecond)

		if _, err := repo.Get(ctx, "K3"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expired record should read as not found, got %v", err)
		}
		created, err := repo.CreateIfAbsent(ctx, "K3", endpoint, "u2", time.Minute)
		if err != nil || !created {
			t.Fatalf("takeover: %v %v", created, err)
		}
		rec, err := repo.Get(ctx, "K3")
		if err != nil || rec.UserID != "u2" {
			t.Fatalf("takeover record: %+v %v", rec, err)
		}
	})
}

func TestRedisIdempotencyRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.NewTracingRepository(repository.NewRedisIdempotencyRepository(client), "redis")
	runContract(t, repo, func(d time.Duration) {
		// miniredis only expires keys when told time has passed
		mr.FastForward(d)
	})
}

func TestGormIdempotencyRepository(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	gormRepo := repository.NewGormIdempotencyRepository(db)
	if err := gormRepo.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := repository.NewTracingRepository(gormRepo, "postgresql")

	runContract(t, repo, time.Sleep)

	t.Run("purge expired", func(t *testing.T) {
		ctx := context.Background()
		if _, err := repo.CreateIfAbsent(ctx, "P1", endpoint, "u", time.Millisecond); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
		n, err := repo.PurgeExpired(ctx, time.Now().UTC())
		if err != nil {
			t.Fatalf("PurgeExpired: %v", err)
		}
		if n < 1 {
			t.Errorf("purged %d, want at least 1", n)
		}
	})
}

func TestGormIdempotencyRepository_PurgeOverLibPQ(t *testing.T) {
	conn, err := database.OpenPostgres(testutil.StartTestPostgres(t), database.Config{MaxOpenConns: 5})
	if err != nil {
		t.Fatalf("open lib/pq: %v", err)
	}
	defer conn.Close()

	db, err := database.GormOnConn(conn)
	if err != nil {
		t.Fatalf("gorm on conn: %v", err)
	}
	repo := repository.NewGormIdempotencyRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	if _, err := repo.CreateIfAbsent(ctx, "short", endpoint, "u", time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateIfAbsent(ctx, "live", endpoint, "u", time.Hour); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	n, err := repo.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}

	var remaining int64
	if err := db.Table("idempotency_records").Count(&remaining).Error; err != nil {
		t.Fatal(err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
	if _, err := repo.Get(ctx, "live"); err != nil {
		t.Errorf("live record: %v", err)
	}
}
