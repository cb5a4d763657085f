package humanness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Response struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TestID              uuid.UUID `gorm:"type:uuid;not null;index;column:test_id" json:"test_id"`
	PanelistID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_response_panelist_message,priority:1;column:panelist_id" json:"panelist_id"`
	MessageID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_response_panelist_message,priority:2;column:message_id" json:"message_id"`
	IdentifiedAsAI      bool      `gorm:"not null;column:identified_as_ai" json:"identified_as_ai"`
	ConfidenceLevel     *int      `gorm:"column:confidence_level" json:"confidence_level,omitempty"`
	Reasoning           string    `gorm:"type:text;column:reasoning" json:"reasoning"`
	ResponseTimeSeconds float64   `gorm:"not null;column:response_time_seconds" json:"response_time_seconds"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Response) TableName() string { return "humanness_response" }

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Judgment is a response joined with the provenance of the judged message.
type Judgment struct {
	MessageID           uuid.UUID `gorm:"column:message_id"`
	MessageType         string    `gorm:"column:message_type"`
	AIPromptingStrategy *string   `gorm:"column:ai_prompting_strategy"`
	IdentifiedAsAI      bool      `gorm:"column:identified_as_ai"`
}
