package app

import (
	"github.com/gin-gonic/gin"

	"github.com/jobbook/jobbook-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthcheckHandler: handlerset.Healthcheck,
		AuthHandler:        handlerset.Auth,
		AuthMiddleware:     middlewareset.Auth,
		UserHandler:        handlerset.User,
		TradeHandler:       handlerset.Trade,
		JobHandler:         handlerset.Job,
		AllowOrigins:       cfg.AllowOrigins,
	})
}
