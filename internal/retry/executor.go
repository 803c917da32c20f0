package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Executor runs an operation until it succeeds, fails fatally, or the backoff
// strategy runs out of attempts.
type Executor struct {
	classifier dlmeta.ErrorClassifier
	strategy   dlmeta.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. Panics if classifier or strategy is nil.
func NewExecutor(classifier dlmeta.ErrorClassifier, strategy dlmeta.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls fn before each wait.
// attempt is zero-indexed.
func (e *Executor) WithOnRetry(fn func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op with retries.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := Do(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Do runs op with the retry policy of e and returns its result.
// A transient error that survives every attempt is wrapped with the attempt
// count; fatal errors and context errors are returned unchanged.
func Do[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	result, err := op(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return result, err
	}

	maxAttempts := e.strategy.MaxAttempts()
	attempt := 0
	for ; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if waitErr := sleep(ctx, delay); waitErr != nil {
			return result, waitErr
		}

		result, err = op(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return result, err
		}
	}

	if attempt == 0 {
		return result, err
	}
	return result, fmt.Errorf("giving up after %d retries: %w", attempt, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
