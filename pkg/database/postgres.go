package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/pos-ledger/pkg/logger"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the libpq keyword/value connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c Config) applyPool(db *sql.DB) {
	maxOpen := c.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxIdle := c.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	lifetime := c.ConnMaxLifetime
	if lifetime == 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)
}

// NewGormConnection opens the pooled gorm handle used by the service.
// The caller owns the handle and must close the underlying *sql.DB.
func NewGormConnection(cfg Config) (*gorm.DB, error) {
	return OpenGorm(cfg.DSN(), cfg)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// OpenGorm opens gorm on an explicit DSN (used by tests with containers)
func OpenGorm(dsn string, cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	cfg.applyPool(sqlDB)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to PostgreSQL")
	return db, nil
}

// NewPostgresConnection opens a plain database/sql handle on lib/pq, used
// by one-shot maintenance commands.
func NewPostgresConnection(cfg Config) (*sql.DB, error) {
	return OpenPostgres(cfg.DSN(), cfg)
}

// OpenPostgres opens a lib/pq handle on an explicit DSN
func OpenPostgres(dsn string, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	cfg.applyPool(db)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// GormOnConn runs gorm over an already open handle, so gorm repositories
// can be used on a lib/pq connection. The caller keeps ownership of conn.
func GormOnConn(conn *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm on connection: %w", err)
	}
	return db, nil
}
