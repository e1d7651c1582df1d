package app

import (
	"time"

	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/jobs/scheduler"
	"github.com/jobbook/jobbook-backend/internal/jobs/worker"
	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/platform/sendgrid"
	"github.com/jobbook/jobbook-backend/internal/services"
)

type Services struct {
	Notification services.NotificationService
	Mailer       services.Mailer
	Auth         services.AuthService
	User         services.UserService
	Job          services.JobService
	Deadline     services.DeadlineService
	Report       services.ReportService
	Worker       *worker.Worker
	Scheduler    *scheduler.Scheduler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	email, err := sendgrid.NewFromEnv(log)
	if err != nil {
		return Services{}, err
	}

	format := services.NewFormatter(cfg.BaseURL)
	notify := services.NewNotificationService(log, reposet.Notification)
	mailer := services.NewMailer(log, reposet.User, email)

	authService := services.NewAuthService(log, reposet.User, notify, format, cfg.JWTSecretKey, cfg.AccessTokenTTL, time.Now)
	userService := services.NewUserService(log, reposet.User, notify, format)
	jobService := services.NewJobService(db, log, reposet.Job, reposet.JobFile, reposet.User, reposet.Trade, notify, format, cfg.UploadsDir, time.Now)
	deadlineService := services.NewDeadlineService(log, reposet.Job, notify, format, time.Now)
	reportService := services.NewReportService(log, reposet.Job, reposet.JobFile, reposet.User, notify, format, cfg.ReportsDir, time.Now)

	notificationWorker := worker.NewWorker(db, log, reposet.Notification, mailer)
	sched := scheduler.New(log, deadlineService, reportService, cfg.DailyCronSpec, cfg.MonthlyCron)

	return Services{
		Notification: notify,
		Mailer:       mailer,
		Auth:         authService,
		User:         userService,
		Job:          jobService,
		Deadline:     deadlineService,
		Report:       reportService,
		Worker:       notificationWorker,
		Scheduler:    sched,
	}, nil
}
