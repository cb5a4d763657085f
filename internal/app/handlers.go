package app

import (
	"context"

	"gorm.io/gorm"

	httpH "github.com/yungbote/outreach-backend/internal/http/handlers"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Humanness    *httpH.HumannessHandler
	ResponseRate *httpH.ResponseRateHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		Humanness:    httpH.NewHumannessHandler(s.Registry, s.Composer, s.Collector, s.Analytics, s.Codifier, s.StrategyPreference),
		ResponseRate: httpH.NewResponseRateHandler(s.ResponseRate),
	}
}
