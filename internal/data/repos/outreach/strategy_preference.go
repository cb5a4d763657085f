package outreach

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type StrategyPreferenceRepo interface {
	GetByUser(dbc dbctx.Context, userID uuid.UUID) (*domain.StrategyPreference, error)
	Upsert(dbc dbctx.Context, pref *domain.StrategyPreference) error
}

type strategyPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStrategyPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) StrategyPreferenceRepo {
	return &strategyPreferenceRepo{db: db, log: baseLog.With("repo", "StrategyPreferenceRepo")}
}

func (r *strategyPreferenceRepo) GetByUser(dbc dbctx.Context, userID uuid.UUID) (*domain.StrategyPreference, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out domain.StrategyPreference
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *strategyPreferenceRepo) Upsert(dbc dbctx.Context, pref *domain.StrategyPreference) error {
	if pref == nil {
		return nil
	}
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"strategy", "version", "source_test_id", "detection_rate", "updated_at"}),
		}).
		Create(pref).Error
}
