package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos/humanness"
	"github.com/yungbote/outreach-backend/internal/data/repos/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type HumannessTestRepo = humanness.TestRepo
type PanelistRepo = humanness.PanelistRepo
type MessageRepo = humanness.MessageRepo
type ResponseRepo = humanness.ResponseRepo
type AnalyticsRepo = humanness.AnalyticsRepo

type ProspectRepo = outreach.ProspectRepo
type TemplateRepo = outreach.TemplateRepo
type AuditLogRepo = outreach.AuditLogRepo
type ConversationLogRepo = outreach.ConversationLogRepo
type StrategyPreferenceRepo = outreach.StrategyPreferenceRepo

var IsDuplicateKey = humanness.IsDuplicateKey

func NewHumannessTestRepo(db *gorm.DB, baseLog *logger.Logger) HumannessTestRepo {
	return humanness.NewTestRepo(db, baseLog)
}
func NewPanelistRepo(db *gorm.DB, baseLog *logger.Logger) PanelistRepo {
	return humanness.NewPanelistRepo(db, baseLog)
}
func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return humanness.NewMessageRepo(db, baseLog)
}
func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return humanness.NewResponseRepo(db, baseLog)
}
func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	return humanness.NewAnalyticsRepo(db, baseLog)
}

func NewProspectRepo(db *gorm.DB, baseLog *logger.Logger) ProspectRepo {
	return outreach.NewProspectRepo(db, baseLog)
}
func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return outreach.NewTemplateRepo(db, baseLog)
}
func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return outreach.NewAuditLogRepo(db, baseLog)
}
func NewConversationLogRepo(db *gorm.DB, baseLog *logger.Logger) ConversationLogRepo {
	return outreach.NewConversationLogRepo(db, baseLog)
}
func NewStrategyPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) StrategyPreferenceRepo {
	return outreach.NewStrategyPreferenceRepo(db, baseLog)
}
