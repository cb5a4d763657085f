package outreach

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type TemplateRepo interface {
	Create(dbc dbctx.Context, t *domain.Template) (*domain.Template, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Template, error)
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) Create(dbc dbctx.Context, t *domain.Template) (*domain.Template, error) {
	if err := dbc.Conn(r.db).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Template, error) {
	var out []*domain.Template
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
