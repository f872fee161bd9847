package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/pos-ledger/internal/inventory/domain"
)

const returningColumns = "location_id, item_id, quantity, reserved_quantity, version, created_at, updated_at"

const numericOutOfRange = "22003"

// wrapWriteError maps a numeric overflow of the quantity column to
// ErrQuantityOutOfRange; the failed statement left the row untouched.
func wrapWriteError(op, locationID, itemID string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == numericOutOfRange {
		return fmt.Errorf("%s %s/%s: %w", op, locationID, itemID, domain.ErrQuantityOutOfRange)
	}
	return fmt.Errorf("%s %s/%s: %w", op, locationID, itemID, err)
}

// GormInventoryRepository stores stock records in Postgres
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{})
}

// IncrementOrCreate is a single upsert; the row lock taken by ON CONFLICT
// serializes concurrent writers on the same key.
func (r *GormInventoryRepository) IncrementOrCreate(ctx context.Context, locationID, itemID string, delta decimal.Decimal) (*domain.Inventory, error) {
	var inv domain.Inventory
	res := r.db.WithContext(ctx).Raw(`
		INSERT INTO inventory_records (location_id, item_id, quantity, reserved_quantity, version, created_at, updated_at)
		VALUES (?, ?, ?, 0, 1, now(), now())
		ON CONFLICT (location_id, item_id) DO UPDATE
		SET quantity = inventory_records.quantity + EXCLUDED.quantity,
		    version = inventory_records.version + 1,
		    updated_at = EXCLUDED.updated_at
		RETURNING `+returningColumns,
		locationID, itemID, delta,
	).Scan(&inv)
	if res.Error != nil {
		return nil, wrapWriteError("increment or create", locationID, itemID, res.Error)
	}
	return &inv, nil
}

func (r *GormInventoryRepository) IncrementIfAtLeast(ctx context.Context, locationID, itemID string, delta, minimum decimal.Decimal) (*domain.Inventory, error) {
	var inv domain.Inventory
	res := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET quantity = quantity + ?, version = version + 1, updated_at = now()
		WHERE location_id = ? AND item_id = ? AND quantity >= ?
		RETURNING `+returningColumns,
		delta, locationID, itemID, minimum,
	).Scan(&inv)
	if res.Error != nil {
		return nil, wrapWriteError("conditional increment", locationID, itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrInsufficientStock
	}
	return &inv, nil
}

func (r *GormInventoryRepository) Get(ctx context.Context, locationID, itemID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND item_id = ?", locationID, itemID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormInventoryRepository) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("item_id").
		Limit(limit).
		Offset(offset).
		Find(&inventories).Error
	return inventories, err
}
