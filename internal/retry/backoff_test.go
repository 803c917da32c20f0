package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Growth(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{50, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_Multiplier(t *testing.T) {
	b := NewExponentialBackoff(3, WithInitialDelay(10*time.Millisecond), WithMultiplier(3), WithJitter(0))
	assert.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	low := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.1), WithRandom(func() float64 { return 0 }))
	high := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.1), WithRandom(func() float64 { return 0.5 }))

	assert.Equal(t, 900*time.Millisecond, low.NextDelay(0))
	assert.Equal(t, time.Second, high.NextDelay(0))
}

func TestExponentialBackoff_JitterClamped(t *testing.T) {
	b := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(5), WithRandom(func() float64 { return 0 }))
	assert.Equal(t, time.Duration(0), b.NextDelay(0))
}

func TestConstantBackoff(t *testing.T) {
	b := ConstantBackoff{Delay: 50 * time.Millisecond, Attempts: 4}
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(9))
	assert.Equal(t, 4, b.MaxAttempts())
}
