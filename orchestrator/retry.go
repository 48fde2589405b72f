package orchestrator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryTransient runs op up to 3 times with a fixed 1-second back-off
// between attempts, the bounded-attempt linear policy the error-handling
// design assigns to transient external calls (header DB, blob store,
// on-chain RPC). It does not retry errors op chooses not to retry by
// returning backoff.Permanent.
func retryTransient(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 2), ctx)
	return backoff.Retry(op, policy)
}
