package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jobbook/jobbook-backend/internal/handlers"
	"github.com/jobbook/jobbook-backend/internal/middleware"
)

type RouterConfig struct {
	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	UserHandler        *handlers.UserHandler
	TradeHandler       *handlers.TradeHandler
	JobHandler         *handlers.JobHandler
	AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/api/register", cfg.AuthHandler.Register)
	router.POST("/api/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Users
	api.GET("/users/me", cfg.UserHandler.GetMe)
	api.POST("/users/:user_id/approve", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.Approve)
	// Trades
	api.GET("/trades", cfg.TradeHandler.List)
	// Jobs
	api.GET("/jobs", cfg.JobHandler.List)
	api.POST("/jobs", cfg.JobHandler.Create)
	api.GET("/my-jobs", cfg.JobHandler.MyJobs)
	api.GET("/jobs/:job_id", cfg.JobHandler.Get)
	api.PUT("/jobs/:job_id", cfg.JobHandler.Update)
	api.GET("/jobs/:job_id/files/:file_id", cfg.JobHandler.DownloadFile)

	return router
}
