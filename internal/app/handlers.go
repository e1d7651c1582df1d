package app

import (
	"github.com/jobbook/jobbook-backend/internal/handlers"
	"github.com/jobbook/jobbook-backend/internal/platform/logger"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Trade       *handlers.TradeHandler
	Job         *handlers.JobHandler
}

func wireHandlers(log *logger.Logger, cfg Config, reposet Repos, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Auth:        handlers.NewAuthHandler(serviceset.Auth, cfg.AccessTokenTTL),
		User:        handlers.NewUserHandler(serviceset.User),
		Trade:       handlers.NewTradeHandler(reposet.Trade),
		Job:         handlers.NewJobHandler(serviceset.Job, cfg.UploadsDir),
	}
}
