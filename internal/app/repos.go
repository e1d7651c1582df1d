package app

import (
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Trade        repos.TradeRepo
	Job          repos.JobRepo
	JobFile      repos.JobFileRepo
	Notification repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Trade:        repos.NewTradeRepo(db, log),
		Job:          repos.NewJobRepo(db, log),
		JobFile:      repos.NewJobFileRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
	}
}
