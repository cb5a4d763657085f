package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	types "github.com/yungbote/outreach-backend/internal/domain"
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

// PanelistMessage is the blind view of a message. It never carries provenance.
type PanelistMessage struct {
	ID                uuid.UUID `json:"id"`
	MessageText       string    `json:"message_text"`
	Subject           string    `json:"subject"`
	Channel           string    `json:"channel"`
	PresentationOrder int       `json:"presentation_order"`
}

type ResponseInput struct {
	MessageID           uuid.UUID
	IdentifiedAsAI      *bool
	ConfidenceLevel     *int
	Reasoning           string
	ResponseTimeSeconds *float64
}

type ResponseReceipt struct {
	ID       uuid.UUID `json:"id"`
	Recorded bool      `json:"recorded"`
}

type CollectorService interface {
	GetPanelistMessages(ctx context.Context, testID, panelistID uuid.UUID) ([]PanelistMessage, error)
	SubmitResponse(ctx context.Context, testID, panelistID uuid.UUID, in ResponseInput) (*ResponseReceipt, error)
	CompletePanelist(ctx context.Context, testID, panelistID uuid.UUID) error
}

type collectorService struct {
	db           *gorm.DB
	log          *logger.Logger
	composer     ComposerService
	panelistRepo repos.PanelistRepo
	messageRepo  repos.MessageRepo
	responseRepo repos.ResponseRepo
	now          func() time.Time
}

func NewCollectorService(
	db *gorm.DB,
	baseLog *logger.Logger,
	composer ComposerService,
	panelistRepo repos.PanelistRepo,
	messageRepo repos.MessageRepo,
	responseRepo repos.ResponseRepo,
) CollectorService {
	return &collectorService{
		db:           db,
		log:          baseLog.With("service", "CollectorService"),
		composer:     composer,
		panelistRepo: panelistRepo,
		messageRepo:  messageRepo,
		responseRepo: responseRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *collectorService) loadPanelist(dbc dbctx.Context, testID, panelistID uuid.UUID) (*types.Panelist, error) {
	p, err := s.panelistRepo.GetByTestAndID(dbc, testID, panelistID)
	if err != nil {
		return nil, apierr.Internal("load_panelist_failed", err)
	}
	if p == nil {
		return nil, apierr.NotFound("panelist_not_found", fmt.Errorf("panelist not found"))
	}
	return p, nil
}

func (s *collectorService) GetPanelistMessages(ctx context.Context, testID, panelistID uuid.UUID) ([]PanelistMessage, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.GetPanelistMessages")
	defer span.End()

	if _, err := s.loadPanelist(dbctx.Context{Ctx: ctx}, testID, panelistID); err != nil {
		return nil, err
	}
	msgs, err := s.composer.AssemblePresentationOrder(ctx, testID)
	if err != nil {
		return nil, err
	}
	out := make([]PanelistMessage, 0, len(msgs))
	for _, m := range msgs {
		pm := PanelistMessage{
			ID:          m.ID,
			MessageText: m.MessageText,
			Subject:     m.Subject,
			Channel:     m.Channel,
		}
		if m.PresentationOrder != nil {
			pm.PresentationOrder = *m.PresentationOrder
		}
		out = append(out, pm)
	}
	return out, nil
}

func (s *collectorService) SubmitResponse(ctx context.Context, testID, panelistID uuid.UUID, in ResponseInput) (*ResponseReceipt, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.SubmitResponse")
	defer span.End()

	if in.MessageID == uuid.Nil {
		return nil, apierr.Validation("missing_message_id", fmt.Errorf("message_id required"))
	}
	if in.IdentifiedAsAI == nil {
		return nil, apierr.Validation("missing_identified_as_ai", fmt.Errorf("identified_as_ai required"))
	}
	if in.ResponseTimeSeconds == nil {
		return nil, apierr.Validation("missing_response_time", fmt.Errorf("response_time_seconds required"))
	}
	if *in.ResponseTimeSeconds < 0 {
		return nil, apierr.Validation("invalid_response_time", fmt.Errorf("response_time_seconds must be >= 0"))
	}
	if in.ConfidenceLevel != nil && (*in.ConfidenceLevel < 1 || *in.ConfidenceLevel > 5) {
		return nil, apierr.Validation("invalid_confidence_level", fmt.Errorf("confidence_level must be between 1 and 5"))
	}

	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.loadPanelist(dbc, testID, panelistID); err != nil {
		return nil, err
	}
	msg, err := s.messageRepo.GetByTestAndID(dbc, testID, in.MessageID)
	if err != nil {
		return nil, apierr.Internal("load_message_failed", err)
	}
	if msg == nil {
		return nil, apierr.NotFound("message_not_found", fmt.Errorf("message not found in this test"))
	}

	resp := &types.Response{
		TestID:              testID,
		PanelistID:          panelistID,
		MessageID:           msg.ID,
		IdentifiedAsAI:      *in.IdentifiedAsAI,
		ConfidenceLevel:     in.ConfidenceLevel,
		Reasoning:           strings.TrimSpace(in.Reasoning),
		ResponseTimeSeconds: *in.ResponseTimeSeconds,
	}
	if _, err := s.responseRepo.Create(dbc, resp); err != nil {
		if repos.IsDuplicateKey(err) {
			return nil, apierr.Conflict("duplicate_response", fmt.Errorf("message already judged by this panelist"))
		}
		s.log.Error("Store response failed", "test_id", testID, "error", err)
		return nil, apierr.Internal("store_response_failed", err)
	}
	observability.Current().IncResponse(resp.IdentifiedAsAI)
	return &ResponseReceipt{ID: resp.ID, Recorded: true}, nil
}

func (s *collectorService) CompletePanelist(ctx context.Context, testID, panelistID uuid.UUID) error {
	ctx, span := humannessTracer.Start(ctx, "humanness.CompletePanelist")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	p, err := s.loadPanelist(dbc, testID, panelistID)
	if err != nil {
		return err
	}
	if err := s.panelistRepo.UpdateFields(dbc, p.ID, map[string]interface{}{
		"recruitment_status": humanness.RecruitmentCompleted,
		"test_completed_at":  s.now(),
	}); err != nil {
		s.log.Error("Complete panelist failed", "panelist_id", p.ID, "error", err)
		return apierr.Internal("complete_panelist_failed", err)
	}
	return nil
}
