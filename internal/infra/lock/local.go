package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker serialises bookings inside one process. It is used when no
// Redis is configured.
type LocalLocker struct {
	opts Options

	mu   sync.Mutex
	held map[string]time.Time
}

func NewLocalLocker(opts Options) *LocalLocker {
	return &LocalLocker{
		opts: opts.withDefaults(),
		held: make(map[string]time.Time),
	}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	var token time.Time

	err := retry(ctx, l.opts, func() (bool, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		now := time.Now()
		if exp, ok := l.held[key]; ok && now.Before(exp) {
			return false, nil
		}
		token = now.Add(l.opts.TTL)
		l.held[key] = token
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(token) {
			delete(l.held, key)
		}
	}, nil
}

var _ Locker = (*LocalLocker)(nil)
