package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"portfolio/internal/config"
	"portfolio/internal/tasks"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, fields map[string]any) (string, error)
}

// Scheduler puts periodic tasks on the stream; the worker executes them.
type Scheduler struct {
	cron  *cron.Cron
	queue Enqueuer
	cfg   config.JobsConfig
	log   zerolog.Logger
}

func NewScheduler(queue Enqueuer, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		cfg:   cfg,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil || !s.cfg.Enabled {
		s.log.Info().Msg("scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.ContactCleanupSchedule, s.enqueueContactCleanup); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("contact_cleanup", s.cfg.ContactCleanupSchedule).Msg("scheduler started")
	return nil
}

// Stop waits up to five seconds for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueContactCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.queue.Enqueue(ctx, tasks.TypeContactCleanup, map[string]any{
		"retention": s.cfg.ContactRetention.String(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue contact cleanup failed")
		return
	}
	s.log.Debug().Str("message_id", id).Msg("contact cleanup enqueued")
}
