package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	types "github.com/yungbote/outreach-backend/internal/domain"
	"github.com/yungbote/outreach-backend/internal/domain/humanness"
	"github.com/yungbote/outreach-backend/internal/domain/outreach"
	mh "github.com/yungbote/outreach-backend/internal/modules/humanness"
	"github.com/yungbote/outreach-backend/internal/observability"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type CodifyResult struct {
	StrategyCodified  string  `json:"strategy_codified"`
	DetectionRate     float64 `json:"detection_rate"`
	TemplatesCreated  int     `json:"templates_created"`
	PromptsUpdated    bool    `json:"prompts_updated"`
	PreferenceVersion int     `json:"preference_version"`
}

type CodifierService interface {
	CodifyWinningStrategy(ctx context.Context, userID, testID uuid.UUID, strategyName *string) (*CodifyResult, error)
}

type codifierService struct {
	db            *gorm.DB
	log           *logger.Logger
	catalog       *mh.Catalog
	preferences   StrategyPreferenceService
	testRepo      repos.HumannessTestRepo
	analyticsRepo repos.AnalyticsRepo
	templateRepo  repos.TemplateRepo
	auditRepo     repos.AuditLogRepo
}

func NewCodifierService(
	db *gorm.DB,
	baseLog *logger.Logger,
	catalog *mh.Catalog,
	preferences StrategyPreferenceService,
	testRepo repos.HumannessTestRepo,
	analyticsRepo repos.AnalyticsRepo,
	templateRepo repos.TemplateRepo,
	auditRepo repos.AuditLogRepo,
) CodifierService {
	return &codifierService{
		db:            db,
		log:           baseLog.With("service", "CodifierService"),
		catalog:       catalog,
		preferences:   preferences,
		testRepo:      testRepo,
		analyticsRepo: analyticsRepo,
		templateRepo:  templateRepo,
		auditRepo:     auditRepo,
	}
}

// CodifyWinningStrategy promotes either the named strategy or the current
// winner. Template insert failures only lower templates_created.
func (s *codifierService) CodifyWinningStrategy(ctx context.Context, userID, testID uuid.UUID, strategyName *string) (*CodifyResult, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.CodifyWinningStrategy")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	test, err := loadOwnedTest(dbc, s.testRepo, userID, testID, true)
	if err != nil {
		return nil, err
	}

	var rec *types.AnalyticsRecord
	if strategyName != nil && strings.TrimSpace(*strategyName) != "" {
		st, pErr := humanness.ParseStrategy(*strategyName)
		if pErr != nil {
			return nil, apierr.Validation("invalid_strategy", pErr)
		}
		rec, err = s.analyticsRepo.GetByTestAndStrategy(dbc, test.ID, st.String())
		if err != nil {
			return nil, apierr.Internal("load_analytics_failed", err)
		}
		if rec == nil {
			return nil, apierr.NotFound("strategy_not_found", fmt.Errorf("no analytics for %s in this test", st))
		}
	} else {
		rec, err = s.analyticsRepo.GetWinning(dbc, test.ID)
		if err != nil {
			return nil, apierr.Internal("load_analytics_failed", err)
		}
		if rec == nil {
			return nil, apierr.NotFound("winning_strategy_not_found", fmt.Errorf("no winning strategy for this test"))
		}
	}
	strategy := humanness.Strategy(rec.Strategy)
	span.SetAttributes(attribute.String("strategy", strategy.String()))

	pref, err := s.preferences.SetActive(ctx, userID, strategy, test.ID, rec.DetectionRate)
	if err != nil {
		return nil, err
	}

	created := 0
	meta, err := templateMetadata(strategy, test.ID, rec.DetectionRate)
	if err != nil {
		s.log.Warn("Template metadata unencodable; skipping templates", "test_id", test.ID, "strategy", strategy, "error", err)
	} else {
		for _, spec := range s.catalog.For(strategy) {
			tpl := &outreach.Template{
				UserID:   userID,
				Name:     spec.Name,
				Channel:  spec.Channel,
				Subject:  spec.Subject,
				Body:     spec.Body,
				IsSystem: false,
				IsActive: true,
				Metadata: meta,
			}
			if _, err := s.templateRepo.Create(dbc, tpl); err != nil {
				s.log.Warn("Template insert failed", "strategy", strategy, "template", spec.Name, "error", err)
				continue
			}
			created++
		}
	}

	if details, err := codifyAuditDetails(strategy, test.ID, rec.DetectionRate); err != nil {
		s.log.Warn("Audit details unencodable; skipping audit log", "test_id", test.ID, "error", err)
	} else if _, err := s.auditRepo.Create(dbc, &outreach.AuditLog{
		UserID:  userID,
		Action:  outreach.AuditActionStrategyCodified,
		Details: details,
	}); err != nil {
		s.log.Warn("Audit log insert failed", "test_id", test.ID, "error", err)
	}

	observability.Current().IncCodification(strategy.String())
	s.log.Info("Strategy codified", "test_id", test.ID, "strategy", strategy, "templates_created", created, "version", pref.Version)
	return &CodifyResult{
		StrategyCodified:  strategy.String(),
		DetectionRate:     rec.DetectionRate,
		TemplatesCreated:  created,
		PromptsUpdated:    true,
		PreferenceVersion: pref.Version,
	}, nil
}

func templateMetadata(strategy humanness.Strategy, testID uuid.UUID, detectionRate float64) (datatypes.JSON, error) {
	b, err := json.Marshal(map[string]any{
		"humanness_strategy": strategy.String(),
		"strategy_label":     strategy.Label(),
		"source_test_id":     testID.String(),
		"detection_rate":     detectionRate,
	})
	if err != nil {
		return nil, fmt.Errorf("template metadata: %w", err)
	}
	return datatypes.JSON(b), nil
}

func codifyAuditDetails(strategy humanness.Strategy, testID uuid.UUID, detectionRate float64) (datatypes.JSON, error) {
	b, err := json.Marshal(map[string]any{
		"test_id":        testID.String(),
		"strategy_name":  strategy.String(),
		"detection_rate": detectionRate,
	})
	if err != nil {
		return nil, fmt.Errorf("audit details: %w", err)
	}
	return datatypes.JSON(b), nil
}
