package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
)

// Archiver builds and stores the summary of a day.
type Archiver interface {
	ArchiveDay(ctx context.Context, date time.Time) (models.DailyReport, error)
}

// Notifier delivers a daily summary.
type Notifier interface {
	SendDailySummary(ctx context.Context, report models.DailyReport) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	archiver Archiver
	notifier Notifier
	now      func() time.Time
	loc      *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a scheduler running the daily summary on spec, a
// standard five-field cron expression evaluated in loc. notifier may be nil.
func NewScheduler(spec string, loc *time.Location, archiver Archiver, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     spec,
		archiver: archiver,
		notifier: notifier,
		now:      time.Now,
		loc:      loc,
		logger:   logger,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec), zap.String("timezone", s.loc.String()))

	if _, err := s.cron.AddFunc(s.spec, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily summary %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDaily(ctx); err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
	}
}

// RunDaily archives today's summary and sends it when a notifier is set.
func (s *Scheduler) RunDaily(ctx context.Context) error {
	today := s.now().In(s.loc)
	s.logger.Info("generating daily summary", zap.String("day", today.Format("2006-01-02")))

	report, err := s.archiver.ArchiveDay(ctx, today)
	if err != nil {
		return fmt.Errorf("archive day: %w", err)
	}

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.SendDailySummary(ctx, report); err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}
	s.logger.Info("daily summary sent successfully")
	return nil
}
