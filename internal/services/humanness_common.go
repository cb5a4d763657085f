package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	types "github.com/yungbote/outreach-backend/internal/domain"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
)

var humannessTracer = otel.Tracer("humanness")

const cacheOpTimeout = 2 * time.Second

func invitationsSentKey(testID uuid.UUID) string {
	return "humanness:test:" + testID.String() + ":invitations_sent"
}

func analyticsRecomputesKey(testID uuid.UUID) string {
	return "humanness:test:" + testID.String() + ":analytics_recomputes"
}

func strategyPreferenceKey(userID uuid.UUID) string {
	return "strategy_pref:" + userID.String()
}

// loadOwnedTest resolves a test for userID. A foreign test reads as missing,
// but a mutation attempt on it is forbidden.
func loadOwnedTest(dbc dbctx.Context, testRepo repos.HumannessTestRepo, userID, testID uuid.UUID, mutate bool) (*types.HumannessTest, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	t, err := testRepo.GetByID(dbc, testID)
	if err != nil {
		return nil, apierr.Internal("load_test_failed", err)
	}
	if t == nil {
		return nil, apierr.NotFound("test_not_found", fmt.Errorf("test not found"))
	}
	if t.UserID != userID {
		if mutate {
			return nil, apierr.Forbidden("test_forbidden", fmt.Errorf("test belongs to another user"))
		}
		return nil, apierr.NotFound("test_not_found", fmt.Errorf("test not found"))
	}
	return t, nil
}

// incrCounter bumps a best-effort cache counter; failures are only logged.
func incrCounter(ctx context.Context, cache redis.Store, log *logger.Logger, key string) {
	if cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()
	if _, err := cache.Incr(cctx, key); err != nil {
		log.Warn("Cache counter increment failed", "key", key, "error", err)
	}
}

func readCounter(ctx context.Context, cache redis.Store, log *logger.Logger, key string) int64 {
	if cache == nil {
		return 0
	}
	cctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	n, err := cache.GetInt(cctx, key)
	if err != nil {
		log.Warn("Cache counter read failed", "key", key, "error", err)
		return 0
	}
	return n
}
