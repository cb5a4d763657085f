package humanness

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type ResponseRepo interface {
	Create(dbc dbctx.Context, resp *domain.Response) (*domain.Response, error)
	ListJudgmentsByTest(dbc dbctx.Context, testID uuid.UUID) ([]domain.Judgment, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{db: db, log: baseLog.With("repo", "ResponseRepo")}
}

func (r *responseRepo) Create(dbc dbctx.Context, resp *domain.Response) (*domain.Response, error) {
	if err := dbc.Conn(r.db).Create(resp).Error; err != nil {
		return nil, err
	}
	return resp, nil
}

// ListJudgmentsByTest joins every response of the test with its message provenance.
// Responses pointing at messages of another test are excluded.
func (r *responseRepo) ListJudgmentsByTest(dbc dbctx.Context, testID uuid.UUID) ([]domain.Judgment, error) {
	var out []domain.Judgment
	if err := dbc.Conn(r.db).
		Table(domain.Response{}.TableName()+" AS r").
		Select("r.message_id AS message_id, m.message_type AS message_type, m.ai_prompting_strategy AS ai_prompting_strategy, r.identified_as_ai AS identified_as_ai").
		Joins("JOIN "+domain.Message{}.TableName()+" AS m ON m.id = r.message_id AND m.test_id = r.test_id").
		Where("r.test_id = ?", testID).
		Order("r.created_at ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
