package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/services"
)

// Scheduler drives the time-based flows: the two daily deadline sweeps and
// the monthly status report. The cron specs come from configuration so tests
// and deployments can move them.
type Scheduler struct {
	log      *logger.Logger
	deadline services.DeadlineService
	report   services.ReportService
	daily    string
	monthly  string
	cron     *cron.Cron
}

func New(baseLog *logger.Logger, deadline services.DeadlineService, report services.ReportService, dailySpec, monthlySpec string) *Scheduler {
	return &Scheduler{
		log:      baseLog.With("component", "Scheduler"),
		deadline: deadline,
		report:   report,
		daily:    dailySpec,
		monthly:  monthlySpec,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()

	if _, err := c.AddFunc(s.daily, func() { s.runDailySweeps(ctx) }); err != nil {
		return err
	}
	if _, err := c.AddFunc(s.monthly, func() { s.runMonthlyReport(ctx) }); err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.log.Info("Scheduler started", "daily_spec", s.daily, "monthly_spec", s.monthly)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) runDailySweeps(ctx context.Context) {
	if _, err := s.deadline.UpcomingDeadlineSweep(ctx); err != nil {
		s.log.Error("Upcoming-deadline sweep failed", "error", err)
	}
	if _, err := s.deadline.OverdueDeadlineSweep(ctx); err != nil {
		s.log.Error("Overdue-deadline sweep failed", "error", err)
	}
}

func (s *Scheduler) runMonthlyReport(ctx context.Context) {
	if _, _, err := s.report.MonthlyStatusReport(ctx); err != nil {
		s.log.Error("Monthly status report failed", "error", err)
	}
}
