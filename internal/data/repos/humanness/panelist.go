package humanness

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type PanelistRepo interface {
	Create(dbc dbctx.Context, p *domain.Panelist) (*domain.Panelist, error)
	GetByTestAndID(dbc dbctx.Context, testID, id uuid.UUID) (*domain.Panelist, error)
	ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.Panelist, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type panelistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPanelistRepo(db *gorm.DB, baseLog *logger.Logger) PanelistRepo {
	return &panelistRepo{db: db, log: baseLog.With("repo", "PanelistRepo")}
}

func (r *panelistRepo) Create(dbc dbctx.Context, p *domain.Panelist) (*domain.Panelist, error) {
	if err := dbc.Conn(r.db).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetByTestAndID returns nil, nil unless the panelist exists and belongs to testID.
func (r *panelistRepo) GetByTestAndID(dbc dbctx.Context, testID, id uuid.UUID) (*domain.Panelist, error) {
	if testID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out domain.Panelist
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

func (r *panelistRepo) ListByTest(dbc dbctx.Context, testID uuid.UUID) ([]*domain.Panelist, error) {
	var out []*domain.Panelist
	if err := dbc.Conn(r.db).
		Where("test_id = ?", testID).
		Order("created_at ASC, email ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *panelistRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&domain.Panelist{}).
		Where("id = ?", id).
		Updates(updates).Error
}
