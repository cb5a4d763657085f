package app

import (
	"github.com/yungbote/outreach-backend/internal/http"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                 log,
		ServiceName:         cfg.ServiceName,
		CORSOrigins:         cfg.CORSOrigins,
		Metrics:             metrics,
		AuthMiddleware:      middleware.Auth,
		HumannessHandler:    handlers.Humanness,
		ResponseRateHandler: handlers.ResponseRate,
		HealthHandler:       handlers.Health,
	})
}
