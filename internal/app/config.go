package app

import (
	"strings"

	"github.com/yungbote/outreach-backend/internal/data/db"
	"github.com/yungbote/outreach-backend/internal/modules/responserate"
	"github.com/yungbote/outreach-backend/internal/platform/envutil"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	AppBaseURL  string

	GenerationConcurrency int
	ResponseRateThreshold float64

	CORSOrigins []string
	MetricsAddr string
	ServiceName string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:                  envutil.String("PORT", "8080"),
		DatabaseDSN:           db.DSNFromEnv(),
		JWTSecret:             envutil.String("JWT_SECRET_KEY", ""),
		AppBaseURL:            envutil.String("APP_BASE_URL", "http://localhost:5173"),
		GenerationConcurrency: envutil.Int("HUMANNESS_GENERATION_CONCURRENCY", 1),
		ResponseRateThreshold: envutil.Float("RESPONSE_RATE_THRESHOLD", responserate.DefaultThreshold),
		CORSOrigins:           envutil.List("CORS_ALLOWED_ORIGINS"),
		MetricsAddr:           envutil.String("METRICS_ADDR", ":9090"),
	}
	if envutil.Bool("OTEL_ENABLED", false) {
		cfg.ServiceName = envutil.String("OTEL_SERVICE_NAME", "outreach-backend")
	}
	if cfg.GenerationConcurrency < 1 {
		cfg.GenerationConcurrency = 1
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Warn("JWT_SECRET_KEY not set; protected routes will reject every request")
	}
	return cfg
}
