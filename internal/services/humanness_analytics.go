package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	mh "github.com/yungbote/outreach-backend/internal/modules/humanness"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
)

type DetectionReport struct {
	TestID uuid.UUID `json:"test_id"`
	mh.DetectionStats
	WinningStrategy *mh.StrategyStats `json:"winning_strategy"`
	PersistFailures []string          `json:"persist_failures,omitempty"`
}

type AnalyticsService interface {
	CalculateDetectionRate(ctx context.Context, userID, testID uuid.UUID) (*DetectionReport, error)
	// GetWinningStrategy returns nil when no strategy-tagged analytics exist.
	GetWinningStrategy(ctx context.Context, userID, testID uuid.UUID) (*mh.StrategyStats, error)
}

type analyticsService struct {
	db            *gorm.DB
	log           *logger.Logger
	cache         redis.Store
	testRepo      repos.HumannessTestRepo
	responseRepo  repos.ResponseRepo
	analyticsRepo repos.AnalyticsRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache redis.Store,
	testRepo repos.HumannessTestRepo,
	responseRepo repos.ResponseRepo,
	analyticsRepo repos.AnalyticsRepo,
) AnalyticsService {
	return &analyticsService{
		db:            db,
		log:           baseLog.With("service", "AnalyticsService"),
		cache:         cache,
		testRepo:      testRepo,
		responseRepo:  responseRepo,
		analyticsRepo: analyticsRepo,
	}
}

// CalculateDetectionRate recomputes everything from raw responses and upserts
// one rollup per strategy. A failed upsert does not stop the others.
func (s *analyticsService) CalculateDetectionRate(ctx context.Context, userID, testID uuid.UUID) (*DetectionReport, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.CalculateDetectionRate")
	defer span.End()
	span.SetAttributes(attribute.String("test_id", testID.String()))

	dbc := dbctx.Context{Ctx: ctx}
	test, err := loadOwnedTest(dbc, s.testRepo, userID, testID, false)
	if err != nil {
		return nil, err
	}
	rows, err := s.responseRepo.ListJudgmentsByTest(dbc, test.ID)
	if err != nil {
		return nil, apierr.Internal("load_responses_failed", err)
	}
	stats := mh.ComputeDetectionStats(rows, test.TargetDetectionRate)
	report := &DetectionReport{TestID: test.ID, DetectionStats: stats}

	for _, st := range stats.Strategies {
		rec := st.ToRecord(test.ID)
		if err := s.analyticsRepo.Upsert(dbc, &rec); err != nil {
			s.log.Warn("Analytics upsert failed", "test_id", test.ID, "strategy", st.Strategy, "error", err)
			report.PersistFailures = append(report.PersistFailures, st.Strategy)
		}
	}

	win, err := s.analyticsRepo.GetWinning(dbc, test.ID)
	if err != nil {
		s.log.Warn("Winning strategy lookup failed", "test_id", test.ID, "error", err)
	} else if win != nil {
		ws := mh.StatsFromRecord(win)
		report.WinningStrategy = &ws
	}
	incrCounter(ctx, s.cache, s.log, analyticsRecomputesKey(test.ID))
	observability.Current().IncDetectionRun(stats.TargetMet)
	span.SetAttributes(attribute.Float64("overall_detection_rate", stats.OverallDetectionRate))
	return report, nil
}

func (s *analyticsService) GetWinningStrategy(ctx context.Context, userID, testID uuid.UUID) (*mh.StrategyStats, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.GetWinningStrategy")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	if _, err := loadOwnedTest(dbc, s.testRepo, userID, testID, false); err != nil {
		return nil, err
	}
	win, err := s.analyticsRepo.GetWinning(dbc, testID)
	if err != nil {
		return nil, apierr.Internal("load_analytics_failed", err)
	}
	if win == nil {
		return nil, nil
	}
	ws := mh.StatsFromRecord(win)
	return &ws, nil
}
