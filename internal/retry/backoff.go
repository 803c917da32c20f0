package retry

import (
	"math/rand"
	"time"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

var (
	_ dlmeta.BackoffStrategy = (*ExponentialBackoff)(nil)
	_ dlmeta.BackoffStrategy = ConstantBackoff{}
)

// ExponentialBackoff doubles (by default) the delay after each attempt, up
// to a cap, with optional jitter.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int
	jitter       float64        // fraction of the delay, 0.1 means +/-10%
	random       func() float64 // values in [0, 1)
}

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between attempts.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter fraction, clamped to [0, 1].
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		switch {
		case j < 0:
			j = 0
		case j > 1:
			j = 1
		}
		b.jitter = j
	}
}

// WithRandom replaces the jitter source. Tests use it for deterministic delays.
func WithRandom(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.random = f }
}

// NewExponentialBackoff creates a strategy allowing maxAttempts retries
// (-1 for unlimited) starting at 200ms and capped at 10s.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 200 * time.Millisecond,
		maxDelay:     10 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		random:       rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay implements dlmeta.BackoffStrategy.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initialDelay)
	for i := 0; i < attempt && delay < float64(b.maxDelay); i++ {
		delay *= b.multiplier
	}
	if delay > float64(b.maxDelay) {
		delay = float64(b.maxDelay)
	}
	if b.jitter > 0 && b.random != nil {
		delay *= 1 + b.jitter*(2*b.random()-1)
	}
	return time.Duration(delay)
}

// MaxAttempts implements dlmeta.BackoffStrategy.
func (b *ExponentialBackoff) MaxAttempts() int { return b.maxAttempts }

// ConstantBackoff waits the same delay before every retry.
type ConstantBackoff struct {
	Delay    time.Duration
	Attempts int
}

// NextDelay implements dlmeta.BackoffStrategy.
func (c ConstantBackoff) NextDelay(int) time.Duration { return c.Delay }

// MaxAttempts implements dlmeta.BackoffStrategy.
func (c ConstantBackoff) MaxAttempts() int { return c.Attempts }
