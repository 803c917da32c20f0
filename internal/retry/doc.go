// Package retry retries operations that fail with transient errors, waiting
// between attempts according to a backoff strategy.
//
// It is used only to establish connections to the PostgreSQL schema store.
// Schema lookups and validation are never retried.
//
//	executor := retry.NewExecutor(retry.NewConnectClassifier(), retry.NewExponentialBackoff(5))
//	pool, err := retry.Do(ctx, executor, func(ctx context.Context) (*pgxpool.Pool, error) {
//	    return connect(ctx)
//	})
//
// Executors are immutable after construction and safe for concurrent use.
package retry
