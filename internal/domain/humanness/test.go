package humanness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TestTypePerceptionPanel = "perception_panel"

	TestStatusDraft     = "draft"
	TestStatusActive    = "active"
	TestStatusCompleted = "completed"

	DefaultTargetDetectionRate = 20.0
)

// Test is one perception study owned by an operator.
type Test struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	TestName            string    `gorm:"not null;column:test_name" json:"test_name"`
	TestVersion         string    `gorm:"column:test_version" json:"test_version"`
	TestType            string    `gorm:"not null;column:test_type" json:"test_type"`
	Status              string    `gorm:"not null;index;column:status" json:"status"`
	TargetDetectionRate float64   `gorm:"not null;column:target_detection_rate" json:"target_detection_rate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Test) TableName() string { return "humanness_test" }

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
