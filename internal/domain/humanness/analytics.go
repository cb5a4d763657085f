package humanness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsRecord is the per-strategy rollup. It is always recomputed from
// responses and upserted on (test_id, strategy).
type AnalyticsRecord struct {
	ID                             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TestID                         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_analytics_test_strategy,priority:1;column:test_id" json:"test_id"`
	Strategy                       string    `gorm:"not null;uniqueIndex:idx_analytics_test_strategy,priority:2;column:strategy" json:"strategy"`
	AIMessagesCount                int       `gorm:"not null;column:ai_messages_count" json:"ai_messages_count"`
	HumanMessagesCount             int       `gorm:"not null;column:human_messages_count" json:"human_messages_count"`
	AICorrectlyIdentified          int       `gorm:"not null;column:ai_correctly_identified" json:"ai_correctly_identified"`
	AIIncorrectlyIdentifiedAsHuman int       `gorm:"not null;column:ai_incorrectly_identified_as_human" json:"ai_incorrectly_identified_as_human"`
	HumanIncorrectlyIdentifiedAsAI int       `gorm:"not null;column:human_incorrectly_identified_as_ai" json:"human_incorrectly_identified_as_ai"`
	DetectionRate                  float64   `gorm:"not null;column:detection_rate" json:"detection_rate"`
	FalsePositiveRate              float64   `gorm:"not null;column:false_positive_rate" json:"false_positive_rate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AnalyticsRecord) TableName() string { return "humanness_analytics" }

func (a *AnalyticsRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
