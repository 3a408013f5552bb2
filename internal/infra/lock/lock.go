package lock

import (
	"context"
	"errors"
	"time"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out exclusive, expiring locks on string keys.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type Options struct {
	TTL     time.Duration
	Retries int
	Backoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 5 * time.Second
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.Backoff <= 0 {
		o.Backoff = 50 * time.Millisecond
	}
	return o
}

// retry calls try up to Retries+1 times, doubling the pause between
// attempts, and gives up with ErrNotAcquired.
func retry(ctx context.Context, o Options, try func() (bool, error)) error {
	wait := o.Backoff
	for attempt := 0; ; attempt++ {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if attempt >= o.Retries {
			return ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}
