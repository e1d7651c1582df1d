package services

import (
	"context"
	"time"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

// DeadlineService runs the two daily sweeps. Each sweep matches one exact
// calendar date, so a job fires at most once per sweep type as long as the
// scheduler runs once a day; a same-day re-run duplicates (at-least-once).
type DeadlineService interface {
	UpcomingDeadlineSweep(ctx context.Context) (int, error)
	OverdueDeadlineSweep(ctx context.Context) (int, error)
}

type deadlineService struct {
	log    *logger.Logger
	jobs   repos.JobRepo
	notify NotificationService
	format *Formatter
	now    func() time.Time
}

func NewDeadlineService(
	baseLog *logger.Logger,
	jobs repos.JobRepo,
	notify NotificationService,
	format *Formatter,
	now func() time.Time,
) DeadlineService {
	return &deadlineService{
		log:    baseLog.With("service", "DeadlineService"),
		jobs:   jobs,
		notify: notify,
		format: format,
		now:    now,
	}
}

// UpcomingDeadlineSweep notifies the contractor of every non-concluded job
// whose deadline is tomorrow.
func (s *deadlineService) UpcomingDeadlineSweep(ctx context.Context) (int, error) {
	target := dateOnly(s.now()).AddDate(0, 0, 1)
	jobs, err := s.jobs.ListByDeadline(ctx, nil, target, types.ConcludedStatuses)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, job := range jobs {
		msg := s.format.UpcomingDeadline(job.ID)
		if _, err := s.notify.Enqueue(ctx, types.EventJobUpcomingDeadline, job.ContractorID, msg, ""); err != nil {
			// A single bad record must not abort the rest of the sweep.
			s.log.Warn("Upcoming-deadline notification skipped", "job_id", job.ID, "error", err)
			continue
		}
		enqueued++
	}
	s.log.Info("Upcoming-deadline sweep finished", "deadline", target.Format(time.DateOnly), "matched", len(jobs), "enqueued", enqueued)
	return enqueued, nil
}

// OverdueDeadlineSweep notifies the principal of every non-concluded job
// whose deadline was yesterday.
func (s *deadlineService) OverdueDeadlineSweep(ctx context.Context) (int, error) {
	target := dateOnly(s.now()).AddDate(0, 0, -1)
	jobs, err := s.jobs.ListByDeadline(ctx, nil, target, types.ConcludedStatuses)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, job := range jobs {
		msg := s.format.OverdueDeadline(job.ID)
		if _, err := s.notify.Enqueue(ctx, types.EventJobOverdueDeadline, job.PrincipalID, msg, ""); err != nil {
			s.log.Warn("Overdue-deadline notification skipped", "job_id", job.ID, "error", err)
			continue
		}
		enqueued++
	}
	s.log.Info("Overdue-deadline sweep finished", "deadline", target.Format(time.DateOnly), "matched", len(jobs), "enqueued", enqueued)
	return enqueued, nil
}
