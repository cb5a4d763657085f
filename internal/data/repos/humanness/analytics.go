package humanness

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type AnalyticsRepo interface {
	Upsert(dbc dbctx.Context, rec *domain.AnalyticsRecord) error
	ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.AnalyticsRecord, error)
	GetByTestAndStrategy(dbc dbctx.Context, testID uuid.UUID, strategy string) (*domain.AnalyticsRecord, error)
	GetWinning(dbc dbctx.Context, testID uuid.UUID) (*domain.AnalyticsRecord, error)
}

type analyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	return &analyticsRepo{db: db, log: baseLog.With("repo", "AnalyticsRepo")}
}

func (r *analyticsRepo) Upsert(dbc dbctx.Context, rec *domain.AnalyticsRecord) error {
	if rec == nil {
		return nil
	}
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "test_id"}, {Name: "strategy"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ai_messages_count",
				"human_messages_count",
				"ai_correctly_identified",
				"ai_incorrectly_identified_as_human",
				"human_incorrectly_identified_as_ai",
				"detection_rate",
				"false_positive_rate",
				"updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *analyticsRepo) ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.AnalyticsRecord, error) {
	var out []*domain.AnalyticsRecord
	if err := dbc.Conn(r.db).
		Where("test_id = ?", testID).
		Order("strategy ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *analyticsRepo) GetByTestAndStrategy(dbc dbctx.Context, testID uuid.UUID, strategy string) (*domain.AnalyticsRecord, error) {
	var out domain.AnalyticsRecord
	if err := dbc.Conn(r.db).
		Where("test_id = ? AND strategy = ?", testID, strategy).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

// GetWinning returns the strategy-tagged row with the lowest detection rate.
// Ties go to the row backed by more AI messages, then to the lower strategy tag.
func (r *analyticsRepo) GetWinning(dbc dbctx.Context, testID uuid.UUID) (*domain.AnalyticsRecord, error) {
	tags := make([]string, 0, 5)
	for _, s := range domain.AllStrategies() {
		tags = append(tags, s.String())
	}
	var out domain.AnalyticsRecord
	if err := dbc.Conn(r.db).
		Where("test_id = ? AND strategy IN ?", testID, tags).
		Order("detection_rate ASC, ai_messages_count DESC, strategy ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}
