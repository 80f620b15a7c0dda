package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled pipeline run.
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron spec. Overlapping runs are skipped.
type Scheduler struct {
	cron *cron.Cron
	job  Job
	log  *slog.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
}

// New parses spec (standard five-field cron, or descriptors like
// "@daily") and registers job.
func New(spec string, job Job, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		cron: cron.New(),
		job:  job,
		log:  log.With("component", "scheduler"),
		ctx:  context.Background(),
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info("scheduler started", "next", s.Next())
	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.log.Info("scheduler stopped")
}

// RunOnce executes the job immediately unless a run is in progress. It
// reports whether the job ran.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn("previous run still in progress, skipping")
		return false
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.log.Info("scheduled run started")
	if err := s.job(ctx); err != nil {
		s.log.Error("scheduled run failed", "error", err)
		return true
	}
	s.log.Info("scheduled run finished")
	return true
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.RunOnce(ctx)
}

// Next returns the next activation time, zero when not started.
func (s *Scheduler) Next() string {
	entries := s.cron.Entries()
	if len(entries) == 0 || entries[0].Next.IsZero() {
		return ""
	}
	return entries[0].Next.Format("2006-01-02 15:04:05 MST")
}
