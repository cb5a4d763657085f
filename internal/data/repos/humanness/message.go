package humanness

import (
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type MessageRepo interface {
	Create(dbc dbctx.Context, msgs []*domain.Message) ([]*domain.Message, error)
	GetByTestAndID(dbc dbctx.Context, testID, id uuid.UUID) (*domain.Message, error)
	ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.Message, error)
	ListGeneratedStrategies(dbc dbctx.Context, testID uuid.UUID) ([]string, error)
	MaxMessageOrder(dbc dbctx.Context, testID uuid.UUID) (int, error)
	AssignPresentationOrder(dbc dbctx.Context, id uuid.UUID, order int) (bool, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (r *messageRepo) Create(dbc dbctx.Context, msgs []*domain.Message) ([]*domain.Message, error) {
	if len(msgs) == 0 {
		return []*domain.Message{}, nil
	}
	if err := dbc.Conn(r.db).Create(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepo) GetByTestAndID(dbc dbctx.Context, testID, id uuid.UUID) (*domain.Message, error) {
	if testID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out domain.Message
	if err := dbc.Conn(r.db).
		Where("id = ? AND test_id = ?", id, testID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

// ListByTest returns messages in insertion order.
func (r *messageRepo) ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.Message, error) {
	var out []*domain.Message
	if err := dbc.Conn(r.db).
		Where("test_id = ?", testID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepo) ListGeneratedStrategies(dbc dbctx.Context, testID uuid.UUID) ([]string, error) {
	var out []string
	if err := dbc.Conn(r.db).
		Model(&domain.Message{}).
		Where("test_id = ? AND message_type = ? AND ai_prompting_strategy IS NOT NULL", testID, domain.MessageTypeAIGenerated).
		Distinct().
		Pluck("ai_prompting_strategy", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepo) MaxMessageOrder(dbc dbctx.Context, testID uuid.UUID) (int, error) {
	var max sql.NullInt64
	row := dbc.Conn(r.db).
		Model(&domain.Message{}).
		Where("test_id = ?", testID).
		Select("MAX(message_order)").
		Row()
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

// AssignPresentationOrder sets the order only if none is stored yet.
func (r *messageRepo) AssignPresentationOrder(dbc dbctx.Context, id uuid.UUID, order int) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&domain.Message{}).
		Where("id = ? AND presentation_order IS NULL", id).
		Update("presentation_order", order)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
