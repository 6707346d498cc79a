package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/amir-akbari361/khuchi/internal/clock"
	obsmetrics "github.com/amir-akbari361/khuchi/internal/observability/metrics"
	usagelogdomain "github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires log, clock and usage service")

const cleanupJobName = "cleanup_usage_logs"

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	UsageSvc usagelogdomain.Service
	Metrics  *obsmetrics.Metrics `optional:"true"`
	Config   Config              `optional:"true"`
}

// Scheduler drives the periodic maintenance work. It never handles job
// failures beyond logging them; a failed run is retried on the next
// tick.
type Scheduler struct {
	log      *zap.Logger
	cfg      Config
	clock    clock.Clock
	usageSvc usagelogdomain.Service
	metrics  *obsmetrics.Metrics
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.UsageSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:      p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:      p.Config.withDefaults(),
		clock:    p.Clock,
		usageSvc: p.UsageSvc,
		metrics:  p.Metrics,
	}, nil
}

// RunForever ticks the maintenance jobs until the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", s.cfg.RunInterval))
	for {
		if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error("maintenance run failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce executes one maintenance pass. Exposed so an external cron can
// trigger cleanup without the internal loop.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runJob(ctx, cleanupJobName, s.cleanupUsageLogs)
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	log := s.log.With(
		zap.String("job", name),
		zap.String("run_id", uuid.NewString()),
	)
	if s.metrics != nil {
		s.metrics.JobRuns.WithLabelValues(name).Inc()
	}
	log.Info("job started")

	err := fn(ctx)

	elapsed := s.clock.Now().Sub(start)
	if s.metrics != nil {
		s.metrics.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.JobFailures.WithLabelValues(name).Inc()
		}
		log.Error("job failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	log.Info("job finished", zap.Duration("elapsed", elapsed))
	return nil
}

func (s *Scheduler) cleanupUsageLogs(ctx context.Context) error {
	removed, err := s.usageSvc.PurgeOlderThan(ctx, s.cfg.UsageRetentionDays)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.PurgedRows.Add(float64(removed))
	}
	return nil
}
