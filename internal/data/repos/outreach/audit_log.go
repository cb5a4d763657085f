package outreach

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type AuditLogRepo interface {
	Create(dbc dbctx.Context, a *domain.AuditLog) (*domain.AuditLog, error)
	ListByUserAndAction(dbc dbctx.Context, userID uuid.UUID, action string) ([]*domain.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) Create(dbc dbctx.Context, a *domain.AuditLog) (*domain.AuditLog, error) {
	if err := dbc.Conn(r.db).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *auditLogRepo) ListByUserAndAction(dbc dbctx.Context, userID uuid.UUID, action string) ([]*domain.AuditLog, error) {
	var out []*domain.AuditLog
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND action = ?", userID, action).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
