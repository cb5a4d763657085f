package outreach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Prospect struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	Email     string    `gorm:"column:email" json:"email"`
	Title     string    `gorm:"column:title" json:"title"`
	Company   string    `gorm:"column:company" json:"company"`
	Industry  string    `gorm:"column:industry" json:"industry"`

	// Enrichment holds {"talking_points": [...], "pain_points": [...]}.
	Enrichment datatypes.JSON `gorm:"column:enrichment" json:"enrichment,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Prospect) TableName() string { return "prospect" }

func (p *Prospect) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Enrichment struct {
	TalkingPoints []string `json:"talking_points"`
	PainPoints    []string `json:"pain_points"`
}
