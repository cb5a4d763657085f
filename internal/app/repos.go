package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type Repos struct {
	HumannessTest      repos.HumannessTestRepo
	Panelist           repos.PanelistRepo
	Message            repos.MessageRepo
	Response           repos.ResponseRepo
	Analytics          repos.AnalyticsRepo
	Prospect           repos.ProspectRepo
	Template           repos.TemplateRepo
	AuditLog           repos.AuditLogRepo
	ConversationLog    repos.ConversationLogRepo
	StrategyPreference repos.StrategyPreferenceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		HumannessTest:      repos.NewHumannessTestRepo(db, log),
		Panelist:           repos.NewPanelistRepo(db, log),
		Message:            repos.NewMessageRepo(db, log),
		Response:           repos.NewResponseRepo(db, log),
		Analytics:          repos.NewAnalyticsRepo(db, log),
		Prospect:           repos.NewProspectRepo(db, log),
		Template:           repos.NewTemplateRepo(db, log),
		AuditLog:           repos.NewAuditLogRepo(db, log),
		ConversationLog:    repos.NewConversationLogRepo(db, log),
		StrategyPreference: repos.NewStrategyPreferenceRepo(db, log),
	}
}
