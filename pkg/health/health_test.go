package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
		wantCode   int
	}{
		{"all up", map[string]CheckFunc{"postgres": ok, "redis": ok}, StatusHealthy, http.StatusOK},
		{"one down", map[string]CheckFunc{"postgres": ok, "redis": down}, StatusDegraded, http.StatusServiceUnavailable},
		{"all down", map[string]CheckFunc{"postgres": down}, StatusUnhealthy, http.StatusServiceUnavailable},
		{"nothing registered", nil, StatusHealthy, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("pos-ledger", time.Second)
			for name, fn := range tt.checks {
				c.Register(name, fn)
			}

			report := c.CheckAll(context.Background())
			if report.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", report.Status, tt.wantStatus)
			}
			if len(report.Dependencies) != len(tt.checks) {
				t.Errorf("dependencies = %d, want %d", len(report.Dependencies), len(tt.checks))
			}

			rec := httptest.NewRecorder()
			c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestCheckerTimeout(t *testing.T) {
	c := NewChecker("pos-ledger", 10*time.Millisecond)
	c.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	report := c.CheckAll(context.Background())
	if report.Dependencies["slow"].Status != StatusUnhealthy {
		t.Errorf("slow probe should time out: %+v", report.Dependencies["slow"])
	}
}
