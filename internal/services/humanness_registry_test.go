package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/data/repos/testutil"
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
)

func TestCreateTestDefaults(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	svc := h.registry(&fakeEmail{})

	created, err := svc.CreateTest(h.ctx, userID, "  Q3 panel ", "")
	require.NoError(t, err)
	assert.Equal(t, "Q3 panel", created.TestName)
	assert.Equal(t, "v1", created.TestVersion)
	assert.Equal(t, humanness.TestTypePerceptionPanel, created.TestType)
	assert.Equal(t, humanness.TestStatusDraft, created.Status)
	assert.Equal(t, humanness.DefaultTargetDetectionRate, created.TargetDetectionRate)

	_, err = svc.CreateTest(h.ctx, userID, " ", "v2")
	requireAPIError(t, err, http.StatusUnprocessableEntity, "missing_test_name")

	detail, err := svc.GetTest(h.ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.Zero(t, detail.Stats.InvitationsSent)

	_, err = svc.GetTest(h.ctx, uuid.New(), created.ID)
	requireAPIError(t, err, http.StatusNotFound, "test_not_found")

	list, err := svc.ListTests(h.ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddPanelistValidationAndDuplicates(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	test := testutil.SeedTest(t, h.ctx, h.db, userID)
	svc := h.registry(&fakeEmail{})

	_, err := svc.AddPanelist(h.ctx, userID, test.ID, PanelistInput{Email: "not-an-email"})
	requireAPIError(t, err, http.StatusUnprocessableEntity, "invalid_email")

	p, err := svc.AddPanelist(h.ctx, userID, test.ID, PanelistInput{Email: "Judge@Example.com", FirstName: "Jo", Compensation: 25})
	require.NoError(t, err)
	assert.Equal(t, "judge@example.com", p.Email)
	assert.Equal(t, humanness.RecruitmentPending, p.RecruitmentStatus)

	_, err = svc.AddPanelist(h.ctx, userID, test.ID, PanelistInput{Email: "judge@example.com"})
	requireAPIError(t, err, http.StatusConflict, "duplicate_panelist")

	_, err = svc.AddPanelist(h.ctx, uuid.New(), test.ID, PanelistInput{Email: "other@example.com"})
	requireAPIError(t, err, http.StatusForbidden, "test_forbidden")

	list, err := svc.ListPanelists(h.ctx, userID, test.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSendPanelistInvitationFailureLeavesStatus(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	test := testutil.SeedTest(t, h.ctx, h.db, userID)
	p := testutil.SeedPanelist(t, h.ctx, h.db, test.ID, "down@example.com")
	svc := h.registry(&fakeEmail{failTo: map[string]bool{"down@example.com": true}})

	_, err := svc.SendPanelistInvitation(h.ctx, userID, test.ID, p.ID)
	requireAPIError(t, err, http.StatusBadGateway, "email_send_failed")
	assert.Contains(t, err.Error(), "upstream status 503")

	got, err := h.panelists.GetByTestAndID(dbctx.Context{Ctx: h.ctx}, test.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, humanness.RecruitmentPending, got.RecruitmentStatus)
	assert.Nil(t, got.InvitationSentAt)
}

func TestSendPanelistInvitationLinkAndStatus(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	test := testutil.SeedTest(t, h.ctx, h.db, userID)
	p := testutil.SeedPanelist(t, h.ctx, h.db, test.ID, "pat@example.com")
	email := &fakeEmail{}
	svc := h.registry(email)

	got, err := svc.SendPanelistInvitation(h.ctx, userID, test.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, humanness.RecruitmentInvited, got.RecruitmentStatus)
	require.NotNil(t, got.InvitationSentAt)

	require.Len(t, email.sent, 1)
	link := "https://app.example.com/humanness-test/" + test.ID.String() + "/panelist/" + p.ID.String()
	assert.True(t, containsAll(email.sent[0].HTML, link, "Hi Pat"))
	assert.Equal(t, "pat@example.com", email.sent[0].To[0].Email)

	_, err = svc.SendPanelistInvitation(h.ctx, userID, test.ID, uuid.New())
	requireAPIError(t, err, http.StatusNotFound, "panelist_not_found")
}

func TestBulkInvitePanelistsContinuesOnError(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	test := testutil.SeedTest(t, h.ctx, h.db, userID)
	a := testutil.SeedPanelist(t, h.ctx, h.db, test.ID, "a@example.com")
	b := testutil.SeedPanelist(t, h.ctx, h.db, test.ID, "b@example.com")
	c := testutil.SeedPanelist(t, h.ctx, h.db, test.ID, "c@example.com")
	svc := h.registry(&fakeEmail{failTo: map[string]bool{"b@example.com": true}})

	res, err := svc.BulkInvitePanelists(h.ctx, userID, test.ID, []uuid.UUID{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, b.ID, res.Errors[0].PanelistID)

	dbc := dbctx.Context{Ctx: h.ctx}
	for id, want := range map[uuid.UUID]string{
		a.ID: humanness.RecruitmentInvited,
		b.ID: humanness.RecruitmentPending,
		c.ID: humanness.RecruitmentInvited,
	} {
		got, err := h.panelists.GetByTestAndID(dbc, test.ID, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.RecruitmentStatus, "panelist %s", id)
	}

	detail, err := svc.GetTest(h.ctx, userID, test.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.Stats.InvitationsSent)

	_, err = svc.BulkInvitePanelists(h.ctx, userID, test.ID, nil)
	requireAPIError(t, err, http.StatusUnprocessableEntity, "missing_panelist_ids")
}
