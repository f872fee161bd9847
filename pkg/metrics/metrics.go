package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// gRPC
var (
	GRPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "status_code"},
	)

	GRPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Domain
var (
	// result: ok, insufficient_stock, invalid, error
	InventoryAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_inventory_adjustments_total",
			Help: "Inventory adjustments by outcome",
		},
		[]string{"result"},
	)

	// result: created, replayed, conflict, insufficient_stock, invalid, error
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_orders_create_total",
			Help: "Order creation attempts by outcome",
		},
		[]string{"result"},
	)

	OrderCreateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pos_order_create_duration_seconds",
			Help:    "Duration of the create-order protocol",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReservationRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_reservation_rollbacks_total",
			Help: "Reserved lines released after a failed order",
		},
	)

	// outcome: acquired, in_flight, replayed, released, finalized
	IdempotencyOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_idempotency_outcomes_total",
			Help: "Idempotency registry outcomes",
		},
		[]string{"outcome"},
	)

	IdempotencyPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_idempotency_purged_total",
			Help: "Expired idempotency records removed by cleanup",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_events_published_total",
			Help: "Kafka events by topic and outcome",
		},
		[]string{"topic", "result"},
	)
)
