package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// Job is one background task. Each run gets its own timeout.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	running map[string]bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		running: make(map[string]bool),
	}
}

// Add registers a job. A run that is still going when the next tick fires
// is not started twice.
func (s *Scheduler) Add(job Job) error {
	if job.Timeout <= 0 {
		job.Timeout = time.Minute
	}

	_, err := s.cron.AddFunc(job.Spec, func() { s.runOnce(job) })
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Spec, err)
	}

	logger.Log.Info("job scheduled", zap.String("job", job.Name), zap.String("spec", job.Spec))
	return nil
}

func (s *Scheduler) runOnce(job Job) {
	s.mu.Lock()
	if s.running[job.Name] {
		s.mu.Unlock()
		logger.Log.Warn("job still running, skipping tick", zap.String("job", job.Name))
		return
	}
	s.running[job.Name] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, job.Name)
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), job.Timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.Log.Error("job failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	logger.Log.Debug("job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
