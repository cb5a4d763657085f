package humanness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecruitmentPending   = "pending"
	RecruitmentInvited   = "invited"
	RecruitmentCompleted = "completed"
)

type Panelist struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TestID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_panelist_test_email,priority:1;column:test_id" json:"test_id"`
	Email             string     `gorm:"not null;uniqueIndex:idx_panelist_test_email,priority:2;column:email" json:"email"`
	FirstName         string     `gorm:"column:first_name" json:"first_name"`
	LastName          string     `gorm:"column:last_name" json:"last_name"`
	Company           string     `gorm:"column:company" json:"company"`
	Role              string     `gorm:"column:role" json:"role"`
	Compensation      float64    `gorm:"column:compensation" json:"compensation"`
	RecruitmentStatus string     `gorm:"not null;index;column:recruitment_status" json:"recruitment_status"`
	InvitationSentAt  *time.Time `gorm:"column:invitation_sent_at" json:"invitation_sent_at,omitempty"`
	TestCompletedAt   *time.Time `gorm:"column:test_completed_at" json:"test_completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Panelist) TableName() string { return "humanness_panelist" }

func (p *Panelist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
