package app

import (
	"fmt"

	"gorm.io/gorm"

	mh "github.com/yungbote/outreach-backend/internal/modules/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/services"
)

type Services struct {
	Composer           services.ComposerService
	Registry           services.RegistryService
	Collector          services.CollectorService
	Analytics          services.AnalyticsService
	Codifier           services.CodifierService
	StrategyPreference services.StrategyPreferenceService
	ResponseRate       services.ResponseRateService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, r Repos) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := mh.DefaultCatalog()
	if err != nil {
		return Services{}, fmt.Errorf("load template catalog: %w", err)
	}

	composer := services.NewComposerService(db, log, clients.LLM, r.HumannessTest, r.Message, r.Prospect, r.ConversationLog, cfg.GenerationConcurrency)
	prefs := services.NewStrategyPreferenceService(db, log, clients.Cache, r.StrategyPreference)

	return Services{
		Composer:           composer,
		Registry:           services.NewRegistryService(db, log, clients.Email, clients.Cache, r.HumannessTest, r.Panelist, cfg.AppBaseURL),
		Collector:          services.NewCollectorService(db, log, composer, r.Panelist, r.Message, r.Response),
		Analytics:          services.NewAnalyticsService(db, log, clients.Cache, r.HumannessTest, r.Response, r.Analytics),
		Codifier:           services.NewCodifierService(db, log, catalog, prefs, r.HumannessTest, r.Analytics, r.Template, r.AuditLog),
		StrategyPreference: prefs,
		ResponseRate:       services.NewResponseRateService(db, log, r.ConversationLog, cfg.ResponseRateThreshold),
	}, nil
}
