package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	types "github.com/yungbote/outreach-backend/internal/domain"
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
)

const strategyPreferenceTTL = 24 * time.Hour

// StrategyPreferenceService owns the per-user active generation strategy.
type StrategyPreferenceService interface {
	SetActive(ctx context.Context, userID uuid.UUID, strategy humanness.Strategy, sourceTestID uuid.UUID, detectionRate float64) (*types.StrategyPreference, error)
	// GetActive returns nil when the user never codified a strategy.
	GetActive(ctx context.Context, userID uuid.UUID) (*types.StrategyPreference, error)
}

type strategyPreferenceService struct {
	db    *gorm.DB
	log   *logger.Logger
	cache redis.Store
	repo  repos.StrategyPreferenceRepo
}

func NewStrategyPreferenceService(db *gorm.DB, baseLog *logger.Logger, cache redis.Store, repo repos.StrategyPreferenceRepo) StrategyPreferenceService {
	return &strategyPreferenceService{
		db:    db,
		log:   baseLog.With("service", "StrategyPreferenceService"),
		cache: cache,
		repo:  repo,
	}
}

// SetActive bumps the version and writes the record through to the cache.
func (s *strategyPreferenceService) SetActive(ctx context.Context, userID uuid.UUID, strategy humanness.Strategy, sourceTestID uuid.UUID, detectionRate float64) (*types.StrategyPreference, error) {
	var pref *types.StrategyPreference
	write := func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		cur, err := s.repo.GetByUser(dbc, userID)
		if err != nil {
			return err
		}
		version := 1
		if cur != nil {
			version = cur.Version + 1
		}
		src := sourceTestID
		pref = &types.StrategyPreference{
			UserID:        userID,
			Strategy:      strategy.String(),
			Version:       version,
			SourceTestID:  &src,
			DetectionRate: detectionRate,
		}
		return s.repo.Upsert(dbc, pref)
	}
	if err := s.db.WithContext(ctx).Transaction(write); err != nil {
		s.log.Error("Store strategy preference failed", "user_id", userID, "error", err)
		return nil, apierr.Internal("store_strategy_preference_failed", err)
	}
	s.writeCache(ctx, pref)
	return pref, nil
}

func (s *strategyPreferenceService) GetActive(ctx context.Context, userID uuid.UUID) (*types.StrategyPreference, error) {
	if s.cache != nil {
		cctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
		raw, ok, err := s.cache.Get(cctx, strategyPreferenceKey(userID))
		cancel()
		if err != nil {
			s.log.Warn("Strategy preference cache read failed", "user_id", userID, "error", err)
		} else if ok {
			var pref types.StrategyPreference
			if jErr := json.Unmarshal([]byte(raw), &pref); jErr == nil {
				return &pref, nil
			}
		}
	}
	pref, err := s.repo.GetByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal("load_strategy_preference_failed", err)
	}
	if pref != nil {
		s.writeCache(ctx, pref)
	}
	return pref, nil
}

func (s *strategyPreferenceService) writeCache(ctx context.Context, pref *types.StrategyPreference) {
	if s.cache == nil || pref == nil {
		return
	}
	raw, err := json.Marshal(pref)
	if err != nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOpTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, strategyPreferenceKey(pref.UserID), string(raw), strategyPreferenceTTL); err != nil {
		s.log.Warn("Strategy preference cache write failed", "user_id", pref.UserID, "error", err)
	}
}
