package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAdd_RejectsBadSpec(t *testing.T) {
	s := NewScheduler()

	err := s.Add(Job{Name: "broken", Spec: "every now and then", Run: func(context.Context) error { return nil }})
	if err == nil {
		t.Fatalf("expected error for an invalid cron expression")
	}
}

func TestRunOnce_SkipsOverlappingRuns(t *testing.T) {
	s := NewScheduler()

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	job := Job{
		Name: "slow",
		Run: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return nil
		},
		Timeout: time.Second,
	}

	done := make(chan struct{})
	go func() {
		s.runOnce(job)
		close(done)
	}()
	<-started

	s.runOnce(job)
	close(release)
	<-done

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected one run, got %d", got)
	}
}

func TestRunOnce_ErrorsAreSwallowed(t *testing.T) {
	s := NewScheduler()

	var calls int32
	job := Job{Name: "flaky", Timeout: time.Second, Run: func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	}}

	s.runOnce(job)
	s.runOnce(job)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected two runs, got %d", got)
	}
}
