package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type ConversationLogRepo interface {
	Create(dbc dbctx.Context, rows []*domain.ConversationLog) ([]*domain.ConversationLog, error)
	CountOutboundAI(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (int64, error)
	CountInbound(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (int64, error)
	LatestInbound(dbc dbctx.Context, userID, prospectID uuid.UUID) (*domain.ConversationLog, error)
}

type conversationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationLogRepo(db *gorm.DB, baseLog *logger.Logger) ConversationLogRepo {
	return &conversationLogRepo{db: db, log: baseLog.With("repo", "ConversationLogRepo")}
}

func (r *conversationLogRepo) Create(dbc dbctx.Context, rows []*domain.ConversationLog) ([]*domain.ConversationLog, error) {
	if len(rows) == 0 {
		return []*domain.ConversationLog{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountOutboundAI counts AI-generated outbound rows with sent_at in [start, end).
func (r *conversationLogRepo) CountOutboundAI(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).
		Model(&domain.ConversationLog{}).
		Where("user_id = ? AND direction = ? AND ai_generated = ?", userID, domain.DirectionOutbound, true).
		Where("sent_at >= ? AND sent_at < ?", start.UTC(), end.UTC()).
		Count(&n).Error
	return n, err
}

// CountInbound counts inbound replies with sent_at in [start, end).
func (r *conversationLogRepo) CountInbound(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).
		Model(&domain.ConversationLog{}).
		Where("user_id = ? AND direction = ?", userID, domain.DirectionInbound).
		Where("sent_at >= ? AND sent_at < ?", start.UTC(), end.UTC()).
		Count(&n).Error
	return n, err
}

func (r *conversationLogRepo) LatestInbound(dbc dbctx.Context, userID, prospectID uuid.UUID) (*domain.ConversationLog, error) {
	var out domain.ConversationLog
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND prospect_id = ? AND direction = ?", userID, prospectID, domain.DirectionInbound).
		Order("sent_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}
