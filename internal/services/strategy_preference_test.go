package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
)

func TestStrategyPreferenceWritesThroughCache(t *testing.T) {
	h := newHarness(t)
	svc := h.preferenceService()
	userID := uuid.New()

	none, err := svc.GetActive(h.ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	pref, err := svc.SetActive(h.ctx, userID, humanness.StrategyBriefImperfect, uuid.New(), 12.5)
	require.NoError(t, err)
	assert.Equal(t, 1, pref.Version)

	_, ok, err := h.cache.Get(h.ctx, strategyPreferenceKey(userID))
	require.NoError(t, err)
	assert.True(t, ok)

	// served from cache even after the row is gone
	require.NoError(t, h.db.Where("user_id = ?", userID).Delete(pref).Error)
	cached, err := svc.GetActive(h.ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "strategy_4", cached.Strategy)
	assert.InDelta(t, 12.5, cached.DetectionRate, 1e-9)

	require.NoError(t, h.cache.Del(h.ctx, strategyPreferenceKey(userID)))
	gone, err := svc.GetActive(h.ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	stored, err := h.preferences.GetByUser(dbctx.Context{Ctx: h.ctx}, userID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
