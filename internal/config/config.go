package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/pos-ledger/pkg/database"
)

// Storage backends selectable per component
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds the service configuration
type Config struct {
	Environment string
	LogLevel    string
	ServiceName string

	HTTPPort       string
	GRPCPort       string
	RequestTimeout time.Duration

	Database database.Config

	RedisAddr     string
	RedisPassword string

	InventoryBackend   string
	IdempotencyBackend string

	IdempotencyTTL             time.Duration
	IdempotencyProcessingTTL   time.Duration
	IdempotencyCleanupInterval time.Duration

	KafkaBrokers []string
	KafkaGroupID string

	JWTSecret          string
	RateLimitPerMinute int

	JaegerEndpoint string
}

// IsDevelopment reports whether the console log writer should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// KafkaEnabled reports whether brokers were configured
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// NeedsRedis reports whether any component is backed by Redis
func (c *Config) NeedsRedis() bool {
	return c.InventoryBackend == BackendRedis ||
		c.IdempotencyBackend == BackendRedis ||
		c.RateLimitPerMinute > 0
}

// Load reads an optional .env file and then the process environment
func Load() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServiceName: getEnv("OTEL_SERVICE_NAME", "pos-ledger"),

		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		GRPCPort:       getEnv("GRPC_PORT", "9090"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "posdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		InventoryBackend:   strings.ToLower(getEnv("INVENTORY_BACKEND", BackendPostgres)),
		IdempotencyBackend: strings.ToLower(getEnv("IDEMPOTENCY_BACKEND", BackendPostgres)),

		IdempotencyTTL:             getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		IdempotencyProcessingTTL:   getEnvDuration("IDEMPOTENCY_PROCESSING_TTL", 5*time.Minute),
		IdempotencyCleanupInterval: getEnvDuration("IDEMPOTENCY_CLEANUP_INTERVAL", 10*time.Minute),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "pos-ledger"),

		JWTSecret:          getEnv("AUTH_JWT_SECRET", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvDuration accepts Go durations ("90s") or bare seconds ("90")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
