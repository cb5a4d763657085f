package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const AuditActionStrategyCodified = "humanness_strategy_codified"

type AuditLog struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Action  string         `gorm:"not null;index;column:action" json:"action"`
	Details datatypes.JSON `gorm:"column:details" json:"details,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
