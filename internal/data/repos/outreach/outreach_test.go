package outreach

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
)

func TestConversationLogRepoCountsHalfOpenWindow(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewConversationLogRepo(db, testutil.Logger(t))

	user := uuid.New()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	testutil.SeedConversation(t, ctx, db, user, domain.DirectionOutbound, true, start)
	testutil.SeedConversation(t, ctx, db, user, domain.DirectionOutbound, true, start.Add(6*time.Hour))
	testutil.SeedConversation(t, ctx, db, user, domain.DirectionOutbound, false, start.Add(7*time.Hour))
	testutil.SeedConversation(t, ctx, db, user, domain.DirectionOutbound, true, end)
	testutil.SeedConversation(t, ctx, db, user, domain.DirectionInbound, false, start.Add(8*time.Hour))
	testutil.SeedConversation(t, ctx, db, uuid.New(), domain.DirectionInbound, false, start.Add(8*time.Hour))

	sent, err := repo.CountOutboundAI(dbc, user, start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sent)

	replies, err := repo.CountInbound(dbc, user, start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 1, replies)
}

func TestConversationLogRepoLatestInbound(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewConversationLogRepo(db, testutil.Logger(t))

	user := uuid.New()
	prospect := uuid.New()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(dbc, []*domain.ConversationLog{
		{UserID: user, ProspectID: &prospect, Direction: domain.DirectionInbound, Content: "first", SentAt: base},
		{UserID: user, ProspectID: &prospect, Direction: domain.DirectionInbound, Content: "latest", SentAt: base.Add(time.Hour)},
		{UserID: user, ProspectID: &prospect, Direction: domain.DirectionOutbound, Content: "ours", SentAt: base.Add(2 * time.Hour)},
	})
	require.NoError(t, err)

	got, err := repo.LatestInbound(dbc, user, prospect)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "latest", got.Content)

	none, err := repo.LatestInbound(dbc, user, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStrategyPreferenceRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewStrategyPreferenceRepo(db, testutil.Logger(t))
	user := uuid.New()

	require.NoError(t, repo.Upsert(dbc, &domain.StrategyPreference{UserID: user, Strategy: "strategy_2", Version: 1}))
	require.NoError(t, repo.Upsert(dbc, &domain.StrategyPreference{UserID: user, Strategy: "strategy_4", Version: 2, DetectionRate: 10}))

	got, err := repo.GetByUser(dbc, user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "strategy_4", got.Strategy)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 10.0, got.DetectionRate)
}

func TestProspectRepoOwnerScoped(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewProspectRepo(db, testutil.Logger(t))
	owner := uuid.New()
	p := testutil.SeedProspect(t, ctx, db, owner)

	got, err := repo.GetByUserAndID(dbc, owner, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Company)

	got, err = repo.GetByUserAndID(dbc, uuid.New(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
