package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyOperation struct {
	calls     int
	failUntil int // calls before this one fail
	err       error
}

func (f *flakyOperation) run(context.Context) error {
	f.calls++
	if f.calls < f.failUntil {
		if f.err != nil {
			return f.err
		}
		return &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}
	}
	return nil
}

func fastExecutor(attempts int) *Executor {
	return NewExecutor(NewConnectClassifier(), ConstantBackoff{Delay: time.Millisecond, Attempts: attempts})
}

func TestExecute_FirstAttemptSucceeds(t *testing.T) {
	op := &flakyOperation{failUntil: 1}
	require.NoError(t, fastExecutor(3).Execute(context.Background(), op.run))
	assert.Equal(t, 1, op.calls)
}

func TestExecute_SucceedsAfterRetries(t *testing.T) {
	var retries []int
	op := &flakyOperation{failUntil: 3}
	e := fastExecutor(5).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		retries = append(retries, attempt)
		assert.Equal(t, time.Millisecond, delay)
	})

	require.NoError(t, e.Execute(context.Background(), op.run))
	assert.Equal(t, 3, op.calls)
	assert.Equal(t, []int{0, 1}, retries)
}

func TestExecute_FatalErrorNotRetried(t *testing.T) {
	fatal := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	op := &flakyOperation{failUntil: 10, err: fatal}

	err := fastExecutor(5).Execute(context.Background(), op.run)

	assert.Same(t, fatal, err)
	assert.Equal(t, 1, op.calls)
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	op := &flakyOperation{failUntil: 100}

	err := fastExecutor(2).Execute(context.Background(), op.run)

	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "57P03", pgErr.Code)
	assert.Contains(t, err.Error(), "giving up after 2 retries")
	assert.Equal(t, 3, op.calls)
}

func TestExecute_NoRetriesConfigured(t *testing.T) {
	op := &flakyOperation{failUntil: 100}

	err := fastExecutor(0).Execute(context.Background(), op.run)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.NotContains(t, err.Error(), "giving up")
	assert.Equal(t, 1, op.calls)
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &flakyOperation{failUntil: 100}
	e := NewExecutor(NewConnectClassifier(), ConstantBackoff{Delay: time.Hour, Attempts: -1}).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	err := e.Execute(ctx, op.run)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.calls)
}

func TestDo_ReturnsResult(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastExecutor(3), func(context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("connection refused")
		}
		return "pool", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "pool", got)
	assert.Equal(t, 2, calls)
}

func TestWithOnRetry_DoesNotModifyReceiver(t *testing.T) {
	base := fastExecutor(1)
	_ = base.WithOnRetry(func(int, error, time.Duration) {})
	assert.Nil(t, base.onRetry)
}

func TestNewExecutor_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, ConstantBackoff{}) })
	assert.Panics(t, func() { NewExecutor(NewConnectClassifier(), nil) })
}
