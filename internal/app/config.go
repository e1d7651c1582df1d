package app

import (
	"strings"
	"time"

	"github.com/jobbook/jobbook-backend/internal/platform/envutil"
)

type Config struct {
	Port           string
	LogMode        string
	BaseURL        string
	AllowOrigins   []string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	UploadsDir     string
	ReportsDir     string
	DailyCronSpec  string
	MonthlyCron    string
	RunScheduler   bool
}

func LoadConfig() Config {
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	origins := strings.Split(envutil.String("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",")
	return Config{
		Port:           envutil.String("PORT", "8080"),
		LogMode:        envutil.String("LOG_MODE", "development"),
		BaseURL:        envutil.String("BASE_URL", "http://localhost:8080"),
		AllowOrigins:   origins,
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		UploadsDir:     envutil.String("UPLOADS_DIR", "uploads"),
		ReportsDir:     envutil.String("REPORTS_DIR", "reports"),
		DailyCronSpec:  envutil.String("DAILY_SWEEP_CRON", "0 6 * * *"),
		MonthlyCron:    envutil.String("MONTHLY_REPORT_CRON", "0 7 1 * *"),
		// Off on all but one replica, so the sweeps and the report run once.
		RunScheduler: envutil.Bool("RUN_SCHEDULER", true),
	}
}
