package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalLocker_ExclusivePerKey(t *testing.T) {
	l := NewLocalLocker(Options{TTL: time.Second, Retries: 0})
	ctx := context.Background()

	release, err := l.Acquire(ctx, "slot:2025-03-10:09:00")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := l.Acquire(ctx, "slot:2025-03-10:09:00"); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}

	other, err := l.Acquire(ctx, "slot:2025-03-10:10:00")
	if err != nil {
		t.Fatalf("other key must be free: %v", err)
	}
	other()

	release()
	again, err := l.Acquire(ctx, "slot:2025-03-10:09:00")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again()
}

func TestLocalLocker_ExpiredLockIsTakenOver(t *testing.T) {
	l := NewLocalLocker(Options{TTL: 50 * time.Millisecond, Retries: 0})
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "k")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	time.Sleep(80 * time.Millisecond)

	fresh, err := l.Acquire(ctx, "k")
	if err != nil {
		t.Fatalf("expected takeover of expired lock: %v", err)
	}

	// Releasing the stale handle must not free the new holder.
	stale()
	if _, err := l.Acquire(ctx, "k"); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("stale release freed the new holder")
	}
	fresh()
}

func TestLocalLocker_RetriesUntilReleased(t *testing.T) {
	l := NewLocalLocker(Options{TTL: time.Second, Retries: 5, Backoff: 5 * time.Millisecond})
	ctx := context.Background()

	release, _ := l.Acquire(ctx, "k")
	go func() {
		time.Sleep(15 * time.Millisecond)
		release()
	}()

	second, err := l.Acquire(ctx, "k")
	if err != nil {
		t.Fatalf("expected acquire after retry, got %v", err)
	}
	second()
}

func TestLocalLocker_SerialisesCriticalSection(t *testing.T) {
	l := NewLocalLocker(Options{TTL: time.Second, Retries: 50, Backoff: time.Millisecond})
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "k")
			if err != nil {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxInside)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, Options{Retries: 3, Backoff: time.Second}, func() (bool, error) { return false, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
