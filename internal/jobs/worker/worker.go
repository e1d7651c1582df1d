package worker

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/envutil"
	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/services"
	"github.com/jobbook/jobbook-backend/internal/types"
)

// Worker drains the notification outbox. Each goroutine claims one row at a
// time with a status compare-and-swap, so running several workers (or several
// processes) delivers each notification once.
type Worker struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.NotificationRepo
	mailer services.Mailer
}

func NewWorker(db *gorm.DB, baseLog *logger.Logger, repo repos.NotificationRepo, mailer services.Mailer) *Worker {
	return &Worker{
		db:     db,
		log:    baseLog.With("component", "NotificationWorker"),
		repo:   repo,
		mailer: mailer,
	}
}

func (w *Worker) Start(ctx context.Context) {
	concurrency := envutil.Int("NOTIFY_WORKER_CONCURRENCY", 2)
	if concurrency < 1 {
		concurrency = 1
	}
	w.log.Info("Starting notification worker pool", "concurrency", concurrency)

	for i := 0; i < concurrency; i++ {
		workerID := i + 1
		go w.runLoop(ctx, workerID)
	}
}

func (w *Worker) runLoop(ctx context.Context, workerID int) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const maxAttempts = 5
	retryDelay := 30 * time.Second
	staleSending := 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Worker loop stopped", "worker_id", workerID)
			return
		case <-ticker.C:
			n, err := w.repo.ClaimNextPending(ctx, nil, maxAttempts, retryDelay, staleSending)
			if err != nil {
				w.log.Warn("ClaimNextPending failed", "worker_id", workerID, "error", err)
				continue
			}
			if n == nil {
				continue
			}
			w.deliverOne(ctx, workerID, n)
		}
	}
}

func (w *Worker) deliverOne(ctx context.Context, workerID int, n *types.Notification) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Mailer panic",
				"worker_id", workerID,
				"notification_id", n.ID,
				"event", n.Event,
				"panic", r,
			)
			_ = w.repo.MarkFailed(ctx, nil, n.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := w.mailer.Deliver(ctx, n); err != nil {
		// A delivery failure never takes the worker down; the row goes back
		// to failed and gets retried until maxAttempts.
		w.log.Warn("Notification delivery failed",
			"worker_id", workerID,
			"notification_id", n.ID,
			"event", n.Event,
			"attempt", n.Attempts,
			"error", err,
		)
		if markErr := w.repo.MarkFailed(ctx, nil, n.ID, err); markErr != nil {
			w.log.Error("MarkFailed failed", "notification_id", n.ID, "error", markErr)
		}
		return
	}

	if err := w.repo.MarkSent(ctx, nil, n.ID); err != nil {
		w.log.Error("MarkSent failed", "notification_id", n.ID, "error", err)
	}
}
