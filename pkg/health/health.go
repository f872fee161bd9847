// Package health reports the reachability of the service's backing stores.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/response"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency; a nil error means reachable
type CheckFunc func(ctx context.Context) error

// DependencyHealth is the result of one probe
type DependencyHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency_ns"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Report is the overall service health
type Report struct {
	Service      string                      `json:"service"`
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyHealth `json:"dependencies"`
	Uptime       float64                     `json:"uptime_seconds"`
}

// Checker runs the registered probes concurrently
type Checker struct {
	service   string
	timeout   time.Duration
	startTime time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewChecker creates a checker; each probe gets at most timeout
func NewChecker(service string, timeout time.Duration) *Checker {
	return &Checker{
		service:   service,
		timeout:   timeout,
		startTime: time.Now(),
		checks:    make(map[string]CheckFunc),
	}
}

// Register adds a named probe
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

func (c *Checker) check(ctx context.Context, name string, fn CheckFunc) DependencyHealth {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result := DependencyHealth{Name: name, Status: StatusHealthy, Timestamp: start}
	if err := fn(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	result.Latency = time.Since(start)
	return result
}

// CheckAll probes every dependency
func (c *Checker) CheckAll(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	deps := make(map[string]DependencyHealth, len(checks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, fn := range checks {
		wg.Add(1)
		go func(n string, f CheckFunc) {
			defer wg.Done()
			h := c.check(ctx, n, f)

			mu.Lock()
			deps[n] = h
			mu.Unlock()

			if h.Status != StatusHealthy {
				logger.Warn(ctx).
					Str("dependency", n).
					Str("error", h.Error).
					Msg("Dependency health check failed")
			}
		}(name, fn)
	}
	wg.Wait()

	return Report{
		Service:      c.service,
		Status:       overallStatus(deps),
		Dependencies: deps,
		Uptime:       time.Since(c.startTime).Seconds(),
	}
}

func overallStatus(deps map[string]DependencyHealth) string {
	healthy := 0
	for _, d := range deps {
		if d.Status == StatusHealthy {
			healthy++
		}
	}

	switch {
	case healthy == len(deps):
		return StatusHealthy
	case healthy > 0:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}

// Handler serves the report: 200 when healthy, 503 otherwise
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.CheckAll(r.Context())
		if report.Status != StatusHealthy {
			response.JSON(w, http.StatusServiceUnavailable, response.Response{
				Success: false,
				Error:   "service " + report.Status,
				Data:    report,
			})
			return
		}
		response.OK(w, http.StatusOK, "", report)
	}
}
