package humanness

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type TestRepo interface {
	Create(dbc dbctx.Context, t *domain.Test) (*domain.Test, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Test, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Test, error)
}

type testRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestRepo(db *gorm.DB, baseLog *logger.Logger) TestRepo {
	return &testRepo{db: db, log: baseLog.With("repo", "HumannessTestRepo")}
}

func (r *testRepo) Create(dbc dbctx.Context, t *domain.Test) (*domain.Test, error) {
	if err := dbc.Conn(r.db).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID returns nil, nil when the test does not exist.
func (r *testRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Test, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out domain.Test
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *testRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Test, error) {
	var out []*domain.Test
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
