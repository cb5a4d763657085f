package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/data/repos/testutil"
	"github.com/yungbote/outreach-backend/internal/domain/outreach"
	"github.com/yungbote/outreach-backend/internal/modules/responserate"
)

func TestCalculateResponseRate(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	svc := NewResponseRateService(h.db, h.log, h.convs, 0)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	empty, err := svc.CalculateResponseRate(h.ctx, userID, start, end)
	require.NoError(t, err)
	assert.Zero(t, empty.MessagesSent)
	assert.Zero(t, empty.ResponseRate)
	assert.True(t, empty.BelowThreshold)
	assert.Equal(t, responserate.DefaultThreshold, empty.Threshold)

	for i := 0; i < 8; i++ {
		testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionOutbound, true, start.Add(time.Duration(i)*time.Hour))
	}
	testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionOutbound, false, start.Add(time.Hour))
	testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionInbound, false, start.Add(3*time.Hour))
	// end is exclusive
	testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionInbound, false, end)

	res, err := svc.CalculateResponseRate(h.ctx, userID, start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 8, res.MessagesSent)
	assert.EqualValues(t, 1, res.RepliesReceived)
	assert.InDelta(t, 12.5, res.ResponseRate, 1e-9)
	assert.False(t, res.BelowThreshold)

	_, err = svc.CalculateResponseRate(h.ctx, userID, end, start)
	requireAPIError(t, err, http.StatusUnprocessableEntity, "invalid_range")
}

func TestTrackResponseRateTrend(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	svc := NewResponseRateService(h.db, h.log, h.convs, 5)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc.(*responseRateService).now = func() time.Time { return now }

	windows := responserate.DailyWindows(now, 6)
	for i, w := range windows {
		sent := 10
		if i >= 3 {
			sent = 20
		}
		for j := 0; j < sent; j++ {
			testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionOutbound, true, w[0].Add(time.Minute))
		}
		testutil.SeedConversation(t, h.ctx, h.db, userID, outreach.DirectionInbound, false, w[0].Add(time.Hour))
	}

	trend, err := svc.TrackResponseRateTrend(h.ctx, userID, 6)
	require.NoError(t, err)
	require.Len(t, trend.DailyRates, 6)
	assert.Equal(t, "2026-03-05", trend.DailyRates[0].Date)
	assert.Equal(t, "2026-03-10", trend.DailyRates[5].Date)
	assert.InDelta(t, 10.0, trend.DailyRates[0].ResponseRate, 1e-9)
	assert.InDelta(t, 5.0, trend.DailyRates[5].ResponseRate, 1e-9)
	assert.Equal(t, responserate.TrendDecreasing, trend.Trend)
	assert.InDelta(t, 10.0, trend.FirstHalfAverage, 1e-9)
	assert.InDelta(t, 5.0, trend.SecondHalfAverage, 1e-9)
	assert.InDelta(t, 7.5, trend.AverageRate, 1e-9)
	assert.False(t, trend.BelowThreshold)

	quiet, err := svc.TrackResponseRateTrend(h.ctx, uuid.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, responserate.DefaultDays, quiet.Days)
	assert.Equal(t, responserate.TrendStable, quiet.Trend)
	assert.True(t, quiet.BelowThreshold)
}
