package humanness

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
)

func TestTestRepoOwnership(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewTestRepo(db, testutil.Logger(t))

	owner := uuid.New()
	created, err := repo.Create(dbc, &domain.Test{
		UserID:              owner,
		TestName:            "q3 panel",
		TestType:            domain.TestTypePerceptionPanel,
		Status:              domain.TestStatusDraft,
		TargetDetectionRate: domain.DefaultTargetDetectionRate,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.GetByID(dbc, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "q3 panel", got.TestName)

	missing, err := repo.GetByID(dbc, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.ListByUser(dbc, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = repo.ListByUser(dbc, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPanelistRepoDuplicateEmail(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewPanelistRepo(db, testutil.Logger(t))
	test := testutil.SeedTest(t, ctx, db, uuid.New())

	_, err := repo.Create(dbc, &domain.Panelist{TestID: test.ID, Email: "a@example.com", RecruitmentStatus: domain.RecruitmentPending})
	require.NoError(t, err)
	_, err = repo.Create(dbc, &domain.Panelist{TestID: test.ID, Email: "a@example.com", RecruitmentStatus: domain.RecruitmentPending})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	other := testutil.SeedTest(t, ctx, db, uuid.New())
	_, err = repo.Create(dbc, &domain.Panelist{TestID: other.ID, Email: "a@example.com", RecruitmentStatus: domain.RecruitmentPending})
	require.NoError(t, err)
}

func TestPanelistRepoScopesByTest(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewPanelistRepo(db, testutil.Logger(t))
	test := testutil.SeedTest(t, ctx, db, uuid.New())
	other := testutil.SeedTest(t, ctx, db, uuid.New())
	p := testutil.SeedPanelist(t, ctx, db, test.ID, "p@example.com")

	got, err := repo.GetByTestAndID(dbc, other.ID, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.UpdateFields(dbc, p.ID, map[string]interface{}{"recruitment_status": domain.RecruitmentInvited}))
	got, err = repo.GetByTestAndID(dbc, test.ID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RecruitmentInvited, got.RecruitmentStatus)
}

func TestMessageRepoOrders(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewMessageRepo(db, testutil.Logger(t))
	test := testutil.SeedTest(t, ctx, db, uuid.New())

	max, err := repo.MaxMessageOrder(dbc, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	tag := domain.StrategyBriefImperfect.String()
	order := 2
	_, err = repo.Create(dbc, []*domain.Message{{
		TestID:              test.ID,
		MessageText:         "x",
		MessageType:         domain.MessageTypeAIGenerated,
		AIPromptingStrategy: &tag,
		Channel:             "email",
		MessageOrder:        &order,
	}})
	require.NoError(t, err)
	human := testutil.SeedMessage(t, ctx, db, test.ID, "")

	max, err = repo.MaxMessageOrder(dbc, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)

	strategies, err := repo.ListGeneratedStrategies(dbc, test.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{tag}, strategies)

	ok, err := repo.AssignPresentationOrder(dbc, human.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.AssignPresentationOrder(dbc, human.ID, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByTestAndID(dbc, test.ID, human.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PresentationOrder)
	assert.Equal(t, 4, *got.PresentationOrder)
}

func TestResponseRepoJudgments(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewResponseRepo(db, testutil.Logger(t))
	test := testutil.SeedTest(t, ctx, db, uuid.New())
	p := testutil.SeedPanelist(t, ctx, db, test.ID, "p@example.com")
	ai := testutil.SeedMessage(t, ctx, db, test.ID, domain.StrategyQuestionLed)
	human := testutil.SeedMessage(t, ctx, db, test.ID, "")

	testutil.SeedResponse(t, ctx, db, test.ID, p.ID, ai.ID, true)
	testutil.SeedResponse(t, ctx, db, test.ID, p.ID, human.ID, true)

	_, err := repo.Create(dbc, &domain.Response{TestID: test.ID, PanelistID: p.ID, MessageID: ai.ID, ResponseTimeSeconds: 1})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	rows, err := repo.ListJudgmentsByTest(dbc, test.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byMessage := map[uuid.UUID]domain.Judgment{}
	for _, r := range rows {
		byMessage[r.MessageID] = r
	}
	require.NotNil(t, byMessage[ai.ID].AIPromptingStrategy)
	assert.Equal(t, "strategy_5", *byMessage[ai.ID].AIPromptingStrategy)
	assert.Equal(t, domain.MessageTypeAIGenerated, byMessage[ai.ID].MessageType)
	assert.Nil(t, byMessage[human.ID].AIPromptingStrategy)
	assert.True(t, byMessage[human.ID].IdentifiedAsAI)
}

func TestAnalyticsRepoUpsertIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewAnalyticsRepo(db, testutil.Logger(t))
	testID := uuid.New()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Upsert(dbc, &domain.AnalyticsRecord{
			TestID:                testID,
			Strategy:              "strategy_2",
			AIMessagesCount:       4,
			AICorrectlyIdentified: 1,
			DetectionRate:         25,
		}))
	}
	rows, err := repo.ListByTest(dbc, testID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 25.0, rows[0].DetectionRate)

	require.NoError(t, repo.Upsert(dbc, &domain.AnalyticsRecord{TestID: testID, Strategy: "strategy_2", AIMessagesCount: 4, DetectionRate: 0}))
	got, err := repo.GetByTestAndStrategy(dbc, testID, "strategy_2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, got.DetectionRate)
}

func TestAnalyticsRepoGetWinning(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewAnalyticsRepo(db, testutil.Logger(t))
	testID := uuid.New()

	none, err := repo.GetWinning(dbc, testID)
	require.NoError(t, err)
	assert.Nil(t, none)

	for _, rec := range []domain.AnalyticsRecord{
		{TestID: testID, Strategy: "strategy_1", AIMessagesCount: 3, DetectionRate: 66.67},
		{TestID: testID, Strategy: "strategy_3", AIMessagesCount: 3, DetectionRate: 33.33},
		{TestID: testID, Strategy: "strategy_4", AIMessagesCount: 3, DetectionRate: 33.33},
		{TestID: testID, Strategy: "strategy_5", AIMessagesCount: 6, DetectionRate: 33.33},
		{TestID: testID, Strategy: "unassigned", DetectionRate: 0},
	} {
		rec := rec
		require.NoError(t, repo.Upsert(dbc, &rec))
	}

	win, err := repo.GetWinning(dbc, testID)
	require.NoError(t, err)
	require.NotNil(t, win)
	assert.Equal(t, "strategy_5", win.Strategy)
}
