package humanness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeAIGenerated  = "ai_generated"
	MessageTypeHumanWritten = "human_written"
)

var validChannels = map[string]bool{
	"email":    true,
	"linkedin": true,
	"sms":      true,
}

// ValidChannel reports whether c is a supported outreach channel.
func ValidChannel(c string) bool { return validChannels[c] }

// Message is one item in a test's blind set.
//
// A test holds at most one message per strategy tag, and MessageOrder is
// unique within a test. Human rows leave both NULL, which stays distinct.
// MessageOrder is assigned once at AI composition time and never changes.
// PresentationOrder is the persisted panelist-facing order; nil until the set
// is first assembled for a panelist.
type Message struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TestID              uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_message_test_strategy,priority:1;uniqueIndex:idx_message_test_order,priority:1;column:test_id" json:"test_id"`
	MessageText         string    `gorm:"type:text;not null;column:message_text" json:"message_text"`
	MessageType         string    `gorm:"not null;index;column:message_type" json:"message_type"`
	AIPromptingStrategy *string   `gorm:"uniqueIndex:idx_message_test_strategy,priority:2;column:ai_prompting_strategy" json:"ai_prompting_strategy,omitempty"`
	Channel             string    `gorm:"not null;column:channel" json:"channel"`
	Subject             string    `gorm:"column:subject" json:"subject"`
	MessageOrder        *int      `gorm:"uniqueIndex:idx_message_test_order,priority:2;column:message_order" json:"message_order,omitempty"`
	PresentationOrder   *int      `gorm:"column:presentation_order" json:"presentation_order,omitempty"`

	ProspectID *uuid.UUID `gorm:"type:uuid;column:prospect_id" json:"prospect_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Message) TableName() string { return "humanness_message" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Strategy returns the parsed strategy tag, or "" for human-written messages.
func (m *Message) Strategy() Strategy {
	if m == nil || m.AIPromptingStrategy == nil {
		return ""
	}
	return Strategy(*m.AIPromptingStrategy)
}
