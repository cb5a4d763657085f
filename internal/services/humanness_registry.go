package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	types "github.com/yungbote/outreach-backend/internal/domain"
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
	"github.com/yungbote/outreach-backend/internal/platform/sendgrid"
)

type PanelistInput struct {
	Email        string
	FirstName    string
	LastName     string
	Company      string
	Role         string
	Compensation float64
}

type InviteFailure struct {
	PanelistID uuid.UUID `json:"panelist_id"`
	Error      string    `json:"error"`
}

type BulkInviteResult struct {
	Total  int             `json:"total"`
	Sent   int             `json:"sent"`
	Failed int             `json:"failed"`
	Errors []InviteFailure `json:"errors"`
}

type TestStats struct {
	InvitationsSent     int64 `json:"invitations_sent"`
	AnalyticsRecomputes int64 `json:"analytics_recomputes"`
}

type TestDetail struct {
	*types.HumannessTest
	Stats TestStats `json:"stats"`
}

type RegistryService interface {
	CreateTest(ctx context.Context, userID uuid.UUID, name, version string) (*types.HumannessTest, error)
	GetTest(ctx context.Context, userID, testID uuid.UUID) (*TestDetail, error)
	ListTests(ctx context.Context, userID uuid.UUID) ([]*types.HumannessTest, error)
	AddPanelist(ctx context.Context, userID, testID uuid.UUID, in PanelistInput) (*types.Panelist, error)
	ListPanelists(ctx context.Context, userID, testID uuid.UUID) ([]*types.Panelist, error)
	SendPanelistInvitation(ctx context.Context, userID, testID, panelistID uuid.UUID) (*types.Panelist, error)
	BulkInvitePanelists(ctx context.Context, userID, testID uuid.UUID, panelistIDs []uuid.UUID) (*BulkInviteResult, error)
}

type registryService struct {
	db           *gorm.DB
	log          *logger.Logger
	email        sendgrid.Client
	cache        redis.Store
	testRepo     repos.HumannessTestRepo
	panelistRepo repos.PanelistRepo
	baseURL      string
	validate     *validator.Validate
	now          func() time.Time
}

func NewRegistryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	email sendgrid.Client,
	cache redis.Store,
	testRepo repos.HumannessTestRepo,
	panelistRepo repos.PanelistRepo,
	baseURL string,
) RegistryService {
	return &registryService{
		db:           db,
		log:          baseLog.With("service", "RegistryService"),
		email:        email,
		cache:        cache,
		testRepo:     testRepo,
		panelistRepo: panelistRepo,
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		validate:     validator.New(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *registryService) CreateTest(ctx context.Context, userID uuid.UUID, name, version string) (*types.HumannessTest, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.CreateTest")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation("missing_test_name", fmt.Errorf("test_name required"))
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "v1"
	}
	t := &types.HumannessTest{
		UserID:              userID,
		TestName:            name,
		TestVersion:         version,
		TestType:            humanness.TestTypePerceptionPanel,
		Status:              humanness.TestStatusDraft,
		TargetDetectionRate: humanness.DefaultTargetDetectionRate,
	}
	if _, err := s.testRepo.Create(dbctx.Context{Ctx: ctx}, t); err != nil {
		s.log.Error("Create test failed", "user_id", userID, "error", err)
		return nil, apierr.Internal("create_test_failed", err)
	}
	return t, nil
}

func (s *registryService) GetTest(ctx context.Context, userID, testID uuid.UUID) (*TestDetail, error) {
	t, err := loadOwnedTest(dbctx.Context{Ctx: ctx}, s.testRepo, userID, testID, false)
	if err != nil {
		return nil, err
	}
	return &TestDetail{
		HumannessTest: t,
		Stats: TestStats{
			InvitationsSent:     readCounter(ctx, s.cache, s.log, invitationsSentKey(t.ID)),
			AnalyticsRecomputes: readCounter(ctx, s.cache, s.log, analyticsRecomputesKey(t.ID)),
		},
	}, nil
}

func (s *registryService) ListTests(ctx context.Context, userID uuid.UUID) ([]*types.HumannessTest, error) {
	out, err := s.testRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal("list_tests_failed", err)
	}
	return out, nil
}

func (s *registryService) AddPanelist(ctx context.Context, userID, testID uuid.UUID, in PanelistInput) (*types.Panelist, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.AddPanelist")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apierr.Validation("invalid_email", fmt.Errorf("invalid email address"))
	}
	if in.Compensation < 0 {
		return nil, apierr.Validation("invalid_compensation", fmt.Errorf("compensation must be >= 0"))
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := loadOwnedTest(dbc, s.testRepo, userID, testID, true); err != nil {
		return nil, err
	}
	p := &types.Panelist{
		TestID:            testID,
		Email:             email,
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Company:           strings.TrimSpace(in.Company),
		Role:              strings.TrimSpace(in.Role),
		Compensation:      in.Compensation,
		RecruitmentStatus: humanness.RecruitmentPending,
	}
	if _, err := s.panelistRepo.Create(dbc, p); err != nil {
		if repos.IsDuplicateKey(err) {
			return nil, apierr.Conflict("duplicate_panelist", fmt.Errorf("panelist already enrolled in this test"))
		}
		s.log.Error("Create panelist failed", "test_id", testID, "error", err)
		return nil, apierr.Internal("create_panelist_failed", err)
	}
	return p, nil
}

func (s *registryService) ListPanelists(ctx context.Context, userID, testID uuid.UUID) ([]*types.Panelist, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := loadOwnedTest(dbc, s.testRepo, userID, testID, false); err != nil {
		return nil, err
	}
	out, err := s.panelistRepo.ListByTest(dbc, testID)
	if err != nil {
		return nil, apierr.Internal("list_panelists_failed", err)
	}
	return out, nil
}

// SendPanelistInvitation only advances the panelist to invited after the
// email collaborator accepted the message.
func (s *registryService) SendPanelistInvitation(ctx context.Context, userID, testID, panelistID uuid.UUID) (*types.Panelist, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.SendPanelistInvitation")
	defer span.End()
	span.SetAttributes(attribute.String("test_id", testID.String()))

	dbc := dbctx.Context{Ctx: ctx}
	test, err := loadOwnedTest(dbc, s.testRepo, userID, testID, true)
	if err != nil {
		return nil, err
	}
	p, err := s.panelistRepo.GetByTestAndID(dbc, testID, panelistID)
	if err != nil {
		return nil, apierr.Internal("load_panelist_failed", err)
	}
	if p == nil {
		return nil, apierr.NotFound("panelist_not_found", fmt.Errorf("panelist not found"))
	}
	if s.email == nil {
		return nil, apierr.ExternalUnavailable("email_unavailable", "email", fmt.Errorf("email client not configured"))
	}

	link := s.InvitationLink(testID, panelistID)
	_, err = s.email.Send(ctx, sendgrid.SendEmailRequest{
		To:         []sendgrid.EmailAddress{{Email: p.Email, Name: strings.TrimSpace(p.FirstName + " " + p.LastName)}},
		Subject:    "You're invited to a short message review study",
		HTML:       invitationHTML(test, p, link),
		Text:       invitationText(test, p, link),
		Categories: []string{"humanness_invitation"},
		CustomArgs: map[string]string{"test_id": testID.String(), "panelist_id": panelistID.String()},
	})
	observability.Current().IncInvitation(err == nil)
	if err != nil {
		s.log.Warn("Invitation send failed", "test_id", testID, "panelist_id", panelistID, "error", err)
		return nil, apierr.ExternalUnavailable("email_send_failed", "email", err)
	}

	sentAt := s.now()
	if err := s.panelistRepo.UpdateFields(dbc, p.ID, map[string]interface{}{
		"recruitment_status": humanness.RecruitmentInvited,
		"invitation_sent_at": sentAt,
	}); err != nil {
		s.log.Error("Panelist status update failed after send", "panelist_id", p.ID, "error", err)
		return nil, apierr.Internal("update_panelist_failed", err)
	}
	p.RecruitmentStatus = humanness.RecruitmentInvited
	p.InvitationSentAt = &sentAt
	incrCounter(ctx, s.cache, s.log, invitationsSentKey(testID))
	return p, nil
}

// BulkInvitePanelists invites sequentially and keeps going past failures.
func (s *registryService) BulkInvitePanelists(ctx context.Context, userID, testID uuid.UUID, panelistIDs []uuid.UUID) (*BulkInviteResult, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.BulkInvitePanelists")
	defer span.End()

	if len(panelistIDs) == 0 {
		return nil, apierr.Validation("missing_panelist_ids", fmt.Errorf("panelist_ids required"))
	}
	if _, err := loadOwnedTest(dbctx.Context{Ctx: ctx}, s.testRepo, userID, testID, true); err != nil {
		return nil, err
	}
	res := &BulkInviteResult{Total: len(panelistIDs), Errors: []InviteFailure{}}
	for _, id := range panelistIDs {
		if _, err := s.SendPanelistInvitation(ctx, userID, testID, id); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, InviteFailure{PanelistID: id, Error: err.Error()})
			continue
		}
		res.Sent++
	}
	s.log.Info("Bulk invitation finished", "test_id", testID, "total", res.Total, "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

func (s *registryService) InvitationLink(testID, panelistID uuid.UUID) string {
	return fmt.Sprintf("%s/humanness-test/%s/panelist/%s", s.baseURL, testID, panelistID)
}

func invitationHTML(t *types.HumannessTest, p *types.Panelist, link string) string {
	var b strings.Builder
	name := strings.TrimSpace(p.FirstName)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&b, "<p>You've been invited to take part in <strong>%s</strong>, a short study where you read a handful of outreach messages and tell us which ones you think were written by AI.</p>", html.EscapeString(t.TestName))
	if p.Compensation > 0 {
		fmt.Fprintf(&b, "<p>Participants receive $%.2f once the study is complete.</p>", p.Compensation)
	}
	fmt.Fprintf(&b, `<p><a href="%s">Start the study</a></p>`, html.EscapeString(link))
	b.WriteString("<p>It takes about ten minutes. Thank you!</p>")
	return b.String()
}

func invitationText(t *types.HumannessTest, p *types.Panelist, link string) string {
	name := strings.TrimSpace(p.FirstName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s,\n\nYou've been invited to take part in %s.\nStart here: %s\n", name, t.TestName, link)
}
