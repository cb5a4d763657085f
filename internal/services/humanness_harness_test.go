package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	"github.com/yungbote/outreach-backend/internal/data/repos/testutil"
	mh "github.com/yungbote/outreach-backend/internal/modules/humanness"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
	"github.com/yungbote/outreach-backend/internal/platform/redis"
	"github.com/yungbote/outreach-backend/internal/platform/sendgrid"
)

type fakeLLM struct {
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
	reply  string
	gate   *llmGate
}

// llmGate holds every call until want calls have arrived.
type llmGate struct {
	mu   sync.Mutex
	n    int
	want int
	open chan struct{}
}

func newLLMGate(want int) *llmGate {
	return &llmGate{want: want, open: make(chan struct{})}
}

func (g *llmGate) wait(ctx context.Context) {
	g.mu.Lock()
	g.n++
	if g.n == g.want {
		close(g.open)
	}
	g.mu.Unlock()
	select {
	case <-g.open:
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (f *fakeLLM) GenerateText(ctx context.Context, system string, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.gate != nil {
		f.gate.wait(ctx)
	}
	if f.failOn[n] {
		return "", errors.New("model overloaded")
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return "```json\n{\"status\":\"qualified\",\"channel\":\"email\",\"confidence\":0.8,\"reasoning\":\"Hi Dana, saw the new warehouse.\"}\n```", nil
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	return nil, errors.New("not used")
}

type fakeEmail struct {
	mu     sync.Mutex
	sent   []sendgrid.SendEmailRequest
	failTo map[string]bool
}

func (f *fakeEmail) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, to := range req.To {
		if f.failTo[to.Email] {
			return nil, &sendgrid.HTTPError{StatusCode: 503, Body: "unavailable"}
		}
	}
	f.sent = append(f.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202, MessageID: fmt.Sprintf("msg-%d", len(f.sent))}, nil
}

type harness struct {
	ctx   context.Context
	db    *gorm.DB
	log   *logger.Logger
	cache redis.Store

	tests       repos.HumannessTestRepo
	panelists   repos.PanelistRepo
	messages    repos.MessageRepo
	responses   repos.ResponseRepo
	analytics   repos.AnalyticsRepo
	prospects   repos.ProspectRepo
	templates   repos.TemplateRepo
	audits      repos.AuditLogRepo
	convs       repos.ConversationLogRepo
	preferences repos.StrategyPreferenceRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &harness{
		ctx:         context.Background(),
		db:          db,
		log:         log,
		cache:       redis.NewMemory(),
		tests:       repos.NewHumannessTestRepo(db, log),
		panelists:   repos.NewPanelistRepo(db, log),
		messages:    repos.NewMessageRepo(db, log),
		responses:   repos.NewResponseRepo(db, log),
		analytics:   repos.NewAnalyticsRepo(db, log),
		prospects:   repos.NewProspectRepo(db, log),
		templates:   repos.NewTemplateRepo(db, log),
		audits:      repos.NewAuditLogRepo(db, log),
		convs:       repos.NewConversationLogRepo(db, log),
		preferences: repos.NewStrategyPreferenceRepo(db, log),
	}
}

func (h *harness) composer(llm *fakeLLM, concurrency int) ComposerService {
	return NewComposerService(h.db, h.log, llm, h.tests, h.messages, h.prospects, h.convs, concurrency)
}

func (h *harness) registry(email sendgrid.Client) RegistryService {
	return NewRegistryService(h.db, h.log, email, h.cache, h.tests, h.panelists, "https://app.example.com/")
}

func (h *harness) collector() CollectorService {
	return NewCollectorService(h.db, h.log, h.composer(&fakeLLM{}, 1), h.panelists, h.messages, h.responses)
}

func (h *harness) analyticsService() AnalyticsService {
	return NewAnalyticsService(h.db, h.log, h.cache, h.tests, h.responses, h.analytics)
}

func (h *harness) preferenceService() StrategyPreferenceService {
	return NewStrategyPreferenceService(h.db, h.log, h.cache, h.preferences)
}

func (h *harness) codifier(t *testing.T) CodifierService {
	t.Helper()
	catalog, err := mh.DefaultCatalog()
	require.NoError(t, err)
	return NewCodifierService(h.db, h.log, catalog, h.preferenceService(), h.tests, h.analytics, h.templates, h.audits)
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apierr.As(err)
	require.True(t, ok, "want *apierr.Error, got %T: %v", err, err)
	require.Equal(t, status, ae.Status, "status for %v", err)
	if code != "" {
		require.Equal(t, code, ae.Code)
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
