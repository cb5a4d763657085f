package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StrategyPreference is the per-user active generation strategy set by codification.
type StrategyPreference struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	Strategy      string     `gorm:"not null;column:strategy" json:"strategy"`
	Version       int        `gorm:"not null;column:version" json:"version"`
	SourceTestID  *uuid.UUID `gorm:"type:uuid;column:source_test_id" json:"source_test_id,omitempty"`
	DetectionRate float64    `gorm:"not null;column:detection_rate" json:"detection_rate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (StrategyPreference) TableName() string { return "strategy_preference" }

func (s *StrategyPreference) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
