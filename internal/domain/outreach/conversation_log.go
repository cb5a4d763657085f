package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// ConversationLog is one production message exchanged with a prospect.
type ConversationLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_conversation_user_time,priority:1;column:user_id" json:"user_id"`
	ProspectID  *uuid.UUID `gorm:"type:uuid;index;column:prospect_id" json:"prospect_id,omitempty"`
	Direction   string     `gorm:"not null;column:direction" json:"direction"`
	Channel     string     `gorm:"column:channel" json:"channel"`
	Content     string     `gorm:"type:text;column:content" json:"content"`
	AIGenerated bool       `gorm:"not null;column:ai_generated" json:"ai_generated"`
	SentAt      time.Time  `gorm:"not null;index:idx_conversation_user_time,priority:2;column:sent_at" json:"sent_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ConversationLog) TableName() string { return "conversation_log" }

func (c *ConversationLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
