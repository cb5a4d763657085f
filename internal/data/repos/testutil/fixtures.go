package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/domain/outreach"
)

func SeedTest(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *humanness.Test {
	tb.Helper()
	t := &humanness.Test{
		ID:                  uuid.New(),
		UserID:              userID,
		TestName:            "panel",
		TestVersion:         "v1",
		TestType:            humanness.TestTypePerceptionPanel,
		Status:              humanness.TestStatusDraft,
		TargetDetectionRate: humanness.DefaultTargetDetectionRate,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed test: %v", err)
	}
	return t
}

func SeedPanelist(tb testing.TB, ctx context.Context, tx *gorm.DB, testID uuid.UUID, email string) *humanness.Panelist {
	tb.Helper()
	p := &humanness.Panelist{
		ID:                uuid.New(),
		TestID:            testID,
		Email:             email,
		FirstName:         "Pat",
		LastName:          "Judge",
		RecruitmentStatus: humanness.RecruitmentPending,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed panelist: %v", err)
	}
	return p
}

// SeedMessage creates an AI message when strategy is non-empty, otherwise a human one.
func SeedMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, testID uuid.UUID, strategy humanness.Strategy) *humanness.Message {
	tb.Helper()
	m := &humanness.Message{
		ID:          uuid.New(),
		TestID:      testID,
		MessageText: "hello there",
		MessageType: humanness.MessageTypeHumanWritten,
		Channel:     "email",
	}
	if strategy != "" {
		tag := strategy.String()
		m.MessageType = humanness.MessageTypeAIGenerated
		m.AIPromptingStrategy = &tag
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return m
}

func SeedResponse(tb testing.TB, ctx context.Context, tx *gorm.DB, testID, panelistID, messageID uuid.UUID, identifiedAsAI bool) *humanness.Response {
	tb.Helper()
	r := &humanness.Response{
		ID:                  uuid.New(),
		TestID:              testID,
		PanelistID:          panelistID,
		MessageID:           messageID,
		IdentifiedAsAI:      identifiedAsAI,
		ResponseTimeSeconds: 12,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed response: %v", err)
	}
	return r
}

func SeedProspect(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *outreach.Prospect {
	tb.Helper()
	p := &outreach.Prospect{
		ID:         uuid.New(),
		UserID:     userID,
		FirstName:  "Dana",
		LastName:   "Reyes",
		Email:      "dana@acme.io",
		Title:      "VP Operations",
		Company:    "Acme",
		Industry:   "Logistics",
		Enrichment: datatypes.JSON([]byte(`{"talking_points":["opened a new warehouse"],"pain_points":["manual routing"]}`)),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed prospect: %v", err)
	}
	return p
}

func SeedConversation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, direction string, aiGenerated bool, sentAt time.Time) *outreach.ConversationLog {
	tb.Helper()
	c := &outreach.ConversationLog{
		ID:          uuid.New(),
		UserID:      userID,
		Direction:   direction,
		Channel:     "email",
		Content:     "msg",
		AIGenerated: aiGenerated,
		SentAt:      sentAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}
