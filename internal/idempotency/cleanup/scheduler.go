package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/tair/pos-ledger/internal/idempotency/domain"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/metrics"
)

// Scheduler periodically removes expired idempotency records
type Scheduler struct {
	repo     domain.Repository
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
	started  bool
	done     chan struct{}
}

func NewScheduler(repo domain.Repository, interval time.Duration) *Scheduler {
	return &Scheduler{
		repo:     repo,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// RunOnce purges everything expired at the current time
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.IdempotencyPurged.Add(float64(n))
	return n, nil
}

// Start runs a purge immediately and then on every tick until Stop or ctx ends
func (s *Scheduler) Start(ctx context.Context) {
	logger.Logger.Info().Dur("interval", s.interval).Msg("Starting idempotency cleanup scheduler")

	s.started = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.purge(ctx)
		for {
			select {
			case <-ticker.C:
				s.purge(ctx)
			case <-s.stopCh:
				logger.Logger.Info().Msg("Idempotency cleanup stopped")
				return
			case <-ctx.Done():
				logger.Logger.Info().Msg("Idempotency cleanup cancelled")
				return
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	if s.started {
		<-s.done
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	n, err := s.RunOnce(ctx)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Idempotency cleanup failed")
		return
	}
	if n > 0 {
		logger.Logger.Info().Int64("purged", n).Msg("Expired idempotency records removed")
	}
}
