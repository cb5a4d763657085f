package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Template is a reusable outreach template owned by a user.
type Template struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Name     string         `gorm:"not null;column:name" json:"name"`
	Channel  string         `gorm:"not null;column:channel" json:"channel"`
	Subject  string         `gorm:"column:subject" json:"subject"`
	Body     string         `gorm:"type:text;not null;column:body" json:"body"`
	IsSystem bool           `gorm:"not null;column:is_system" json:"is_system"`
	IsActive bool           `gorm:"not null;column:is_active" json:"is_active"`
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Template) TableName() string { return "template" }

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
