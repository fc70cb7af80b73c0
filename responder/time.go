package responder

import (
	"context"
	"math/rand"
	"time"
)

// randT returns a random duration in [0, d].
func randT(d time.Duration) time.Duration {
	return time.Duration(rand.Int63n(int64(d) + 1))
}

// sleep sleeps for d, or until ctx is canceled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
