package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/pos-ledger/internal/idempotency/domain"
)

// recordModel is the Postgres row; Response is NULL while processing
type recordModel struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Endpoint  string    `gorm:"size:255;not null"`
	UserID    string    `gorm:"size:255;not null"`
	State     string    `gorm:"size:16;not null"`
	Response  *string   `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (recordModel) TableName() string {
	return "idempotency_records"
}

func (m *recordModel) toDomain() *domain.Record {
	rec := &domain.Record{
		Key:       m.Key,
		Endpoint:  m.Endpoint,
		UserID:    m.UserID,
		State:     domain.State(m.State),
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
	if m.Response != nil {
		rec.Response = json.RawMessage(*m.Response)
	}
	return rec
}

// GormIdempotencyRepository stores idempotency records in Postgres.
// Expiry is enforced on read and by PurgeExpired.
type GormIdempotencyRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormIdempotencyRepository(db *gorm.DB) *GormIdempotencyRepository {
	return &GormIdempotencyRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *GormIdempotencyRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&recordModel{})
}

func (r *GormIdempotencyRepository) Get(ctx context.Context, key string) (*domain.Record, error) {
	var m recordModel
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, r.now()).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// CreateIfAbsent inserts a processing record. An existing record is only
// replaced when it has expired, so the upsert acts as a compare-and-swap.
func (r *GormIdempotencyRepository) CreateIfAbsent(ctx context.Context, key, endpoint, userID string, ttl time.Duration) (bool, error) {
	now := r.now()
	m := recordModel{
		Key:       key,
		Endpoint:  endpoint,
		UserID:    userID,
		State:     string(domain.StateProcessing),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "user_id", "state", "response", "created_at", "expires_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_records.expires_at <= ?", Vars: []interface{}{now}},
		}},
	}).Create(&m)
	if res.Error != nil {
		return false, fmt.Errorf("create idempotency record %s: %w", key, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GormIdempotencyRepository) SetResponse(ctx context.Context, key string, response json.RawMessage, ttl time.Duration) (*domain.Record, error) {
	body := string(response)
	res := r.db.WithContext(ctx).
		Model(&recordModel{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"state":      string(domain.StateDone),
			"response":   body,
			"expires_at": r.now().Add(ttl),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("set idempotency response %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, key)
}

func (r *GormIdempotencyRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ? AND state = ?", key, string(domain.StateProcessing)).
		Delete(&recordModel{}).Error
}

func (r *GormIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&recordModel{})
	return res.RowsAffected, res.Error
}
