package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/outreach-backend/internal/http/handlers"
	httpMW "github.com/yungbote/outreach-backend/internal/http/middleware"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	HumannessHandler    *httpH.HumannessHandler
	ResponseRateHandler *httpH.ResponseRateHandler
	HealthHandler       *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	tests := r.Group("/api/humanness-tests")

	// Panelist-facing (public)
	if cfg.HumannessHandler != nil {
		tests.GET("/:id/panelist/:panelistId/messages", cfg.HumannessHandler.PanelistMessages)
		tests.POST("/:id/panelist/:panelistId/responses", cfg.HumannessHandler.SubmitResponse)
		tests.POST("/:id/panelist/:panelistId/complete", cfg.HumannessHandler.CompletePanelist)
	}

	protected := tests.Group("")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Response rate
		if cfg.ResponseRateHandler != nil {
			protected.GET("/response-rate", cfg.ResponseRateHandler.ResponseRate)
			protected.GET("/response-rate/trend", cfg.ResponseRateHandler.Trend)
		}

		// Tests, panelists, messages, analytics
		if h := cfg.HumannessHandler; h != nil {
			protected.GET("", h.ListTests)
			protected.POST("", h.CreateTest)
			protected.GET("/strategy-preference", h.StrategyPreference)
			protected.GET("/:id", h.GetTest)
			protected.POST("/:id/panelists", h.AddPanelist)
			protected.GET("/:id/panelists", h.ListPanelists)
			protected.POST("/:id/panelists/bulk-invite", h.BulkInvite)
			protected.POST("/:id/panelists/:panelistId/invite", h.InvitePanelist)
			protected.POST("/:id/generate-messages", h.GenerateMessages)
			protected.POST("/:id/human-messages", h.SubmitHumanMessages)
			protected.GET("/:id/analytics", h.Analytics)
			protected.GET("/:id/winning-strategy", h.WinningStrategy)
			protected.POST("/:id/codify-strategy", h.CodifyStrategy)
		}
	}

	return r
}
