package kafka

import (
	"errors"
	"sync"
	"time"

	"github.com/tair/pos-ledger/pkg/logger"
)

// BreakerState is the state of a Breaker
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// ErrBreakerOpen is returned without contacting the broker while the
// breaker is open
var ErrBreakerOpen = errors.New("kafka circuit breaker is open")

// Breaker stops sends after maxFailures consecutive failures. After
// cooldown it lets sends through again in half-open state; probeSuccesses
// successes close it, any failure reopens it.
type Breaker struct {
	maxFailures    int
	cooldown       time.Duration
	probeSuccesses int
	now            func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	changedAt time.Time
}

func NewBreaker(maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &Breaker{
		maxFailures:    maxFailures,
		cooldown:       cooldown,
		probeSuccesses: 3,
		now:            time.Now,
		state:          BreakerClosed,
		changedAt:      time.Now(),
	}
}

// Call runs fn unless the breaker is open
func (b *Breaker) Call(fn func() error) error {
	if !b.allow() {
		return ErrBreakerOpen
	}
	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
	} else {
		b.onSuccess()
	}
	return err
}

// State reports the current state, moving open to half-open once the
// cooldown has passed
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	return b.state != BreakerOpen
}

func (b *Breaker) maybeHalfOpen() {
	if b.state == BreakerOpen && b.now().Sub(b.changedAt) >= b.cooldown {
		b.setState(BreakerHalfOpen)
		b.successes = 0
	}
}

func (b *Breaker) onFailure() {
	b.failures++
	switch {
	case b.state == BreakerHalfOpen:
		b.setState(BreakerOpen)
	case b.failures >= b.maxFailures:
		b.setState(BreakerOpen)
	}
}

func (b *Breaker) onSuccess() {
	switch b.state {
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.probeSuccesses {
			b.failures = 0
			b.setState(BreakerClosed)
		}
	case BreakerClosed:
		b.failures = 0
	}
}

func (b *Breaker) setState(s BreakerState) {
	if b.state == s {
		return
	}
	logger.Logger.Warn().
		Str("from", string(b.state)).
		Str("to", string(s)).
		Int("failures", b.failures).
		Msg("Kafka circuit breaker state changed")
	b.state = s
	b.changedAt = b.now()
}
