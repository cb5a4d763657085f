package outreach

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type ProspectRepo interface {
	Create(dbc dbctx.Context, p *domain.Prospect) (*domain.Prospect, error)
	GetByUserAndID(dbc dbctx.Context, userID, id uuid.UUID) (*domain.Prospect, error)
}

type prospectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProspectRepo(db *gorm.DB, baseLog *logger.Logger) ProspectRepo {
	return &prospectRepo{db: db, log: baseLog.With("repo", "ProspectRepo")}
}

func (r *prospectRepo) Create(dbc dbctx.Context, p *domain.Prospect) (*domain.Prospect, error) {
	if err := dbc.Conn(r.db).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetByUserAndID returns nil, nil unless the prospect exists and is owned by userID.
func (r *prospectRepo) GetByUserAndID(dbc dbctx.Context, userID, id uuid.UUID) (*domain.Prospect, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out domain.Prospect
	if err := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}
