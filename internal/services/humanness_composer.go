package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
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
	"github.com/yungbote/outreach-backend/internal/platform/openai"
	"github.com/yungbote/outreach-backend/internal/platform/promptstyle"
)

const HumanMessagesPerBatch = 5

type HumanMessageInput struct {
	MessageText string `json:"message_text"`
	Subject     string `json:"subject"`
	Channel     string `json:"channel"`
}

type GenerationFailure struct {
	Strategy string `json:"strategy"`
	Error    string `json:"error"`
}

type GenerateMessagesResult struct {
	Messages []*types.Message    `json:"messages"`
	Skipped  []string            `json:"skipped,omitempty"`
	Failures []GenerationFailure `json:"failures"`
}

type ComposerService interface {
	GenerateAIMessages(ctx context.Context, userID, testID, prospectID uuid.UUID, channel string) (*GenerateMessagesResult, error)
	SubmitHumanMessages(ctx context.Context, userID, testID uuid.UUID, in []HumanMessageInput) ([]*types.Message, error)
	AssemblePresentationOrder(ctx context.Context, testID uuid.UUID) ([]*types.Message, error)
}

type composerService struct {
	db           *gorm.DB
	log          *logger.Logger
	llm          openai.Client
	testRepo     repos.HumannessTestRepo
	messageRepo  repos.MessageRepo
	prospectRepo repos.ProspectRepo
	convRepo     repos.ConversationLogRepo
	concurrency  int

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewComposerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	llm openai.Client,
	testRepo repos.HumannessTestRepo,
	messageRepo repos.MessageRepo,
	prospectRepo repos.ProspectRepo,
	convRepo repos.ConversationLogRepo,
	concurrency int,
) ComposerService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &composerService{
		db:           db,
		log:          baseLog.With("service", "ComposerService"),
		llm:          llm,
		testRepo:     testRepo,
		messageRepo:  messageRepo,
		prospectRepo: prospectRepo,
		convRepo:     convRepo,
		concurrency:  concurrency,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type generation struct {
	qual mh.Qualification
	err  error
}

func (s *composerService) GenerateAIMessages(ctx context.Context, userID, testID, prospectID uuid.UUID, channel string) (*GenerateMessagesResult, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.GenerateAIMessages")
	defer span.End()
	span.SetAttributes(attribute.String("test_id", testID.String()))

	channel = strings.ToLower(strings.TrimSpace(channel))
	if !humanness.ValidChannel(channel) {
		return nil, apierr.Validation("invalid_channel", fmt.Errorf("unsupported channel %q", channel))
	}
	dbc := dbctx.Context{Ctx: ctx}
	test, err := loadOwnedTest(dbc, s.testRepo, userID, testID, true)
	if err != nil {
		return nil, err
	}
	prospect, err := s.prospectRepo.GetByUserAndID(dbc, userID, prospectID)
	if err != nil {
		return nil, apierr.Internal("load_prospect_failed", err)
	}
	if prospect == nil {
		return nil, apierr.NotFound("prospect_not_found", fmt.Errorf("prospect not found"))
	}
	if s.llm == nil {
		return nil, apierr.ExternalUnavailable("llm_unavailable", "llm", fmt.Errorf("llm client not configured"))
	}

	existing, err := s.messageRepo.ListGeneratedStrategies(dbc, test.ID)
	if err != nil {
		return nil, apierr.Internal("load_messages_failed", err)
	}
	done := map[string]bool{}
	for _, tag := range existing {
		done[tag] = true
	}

	result := &GenerateMessagesResult{Messages: []*types.Message{}, Failures: []GenerationFailure{}}
	pending := make([]humanness.Strategy, 0, 5)
	for _, st := range humanness.AllStrategies() {
		if done[st.String()] {
			result.Skipped = append(result.Skipped, st.String())
			continue
		}
		pending = append(pending, st)
	}
	if len(pending) == 0 {
		return result, nil
	}

	userPrompt := s.qualificationContext(dbc, userID, prospect, channel).Render()
	gens := s.generate(ctx, pending, userPrompt)

	for i, st := range pending {
		g := gens[i]
		tag := st.String()
		if g.err != nil {
			s.log.Warn("Strategy generation failed", "test_id", test.ID, "strategy", st, "error", g.err)
			result.Failures = append(result.Failures, GenerationFailure{Strategy: tag, Error: g.err.Error()})
			continue
		}
		msgChannel := channel
		if humanness.ValidChannel(g.qual.Channel) {
			msgChannel = g.qual.Channel
		}
		pid := prospect.ID
		msg := &types.Message{
			TestID:              test.ID,
			MessageText:         g.qual.Reasoning,
			MessageType:         humanness.MessageTypeAIGenerated,
			AIPromptingStrategy: &tag,
			Channel:             msgChannel,
			Subject:             mh.SubjectFor(prospect.Company),
			ProspectID:          &pid,
		}
		stored, err := s.storeGenerated(dbc, msg)
		switch {
		case err != nil:
			s.log.Warn("Strategy message insert failed", "test_id", test.ID, "strategy", st, "error", err)
			result.Failures = append(result.Failures, GenerationFailure{Strategy: tag, Error: "failed to store message"})
		case !stored:
			s.log.Info("Strategy stored by a concurrent run", "test_id", test.ID, "strategy", st)
			result.Skipped = append(result.Skipped, tag)
		default:
			result.Messages = append(result.Messages, msg)
		}
	}

	s.log.Info("AI message set generated",
		"test_id", test.ID,
		"generated", len(result.Messages),
		"failed", len(result.Failures),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

const storeAttempts = 5

// storeGenerated appends msg after the test's highest message_order. It
// reports false when the strategy tag is already stored for the test. A lost
// race on message_order alone is retried with a fresh maximum.
func (s *composerService) storeGenerated(dbc dbctx.Context, msg *types.Message) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < storeAttempts; attempt++ {
		maxOrder, err := s.messageRepo.MaxMessageOrder(dbc, msg.TestID)
		if err != nil {
			return false, err
		}
		order := maxOrder + 1
		msg.MessageOrder = &order
		_, err = s.messageRepo.Create(dbc, []*types.Message{msg})
		if err == nil {
			return true, nil
		}
		if !repos.IsDuplicateKey(err) {
			return false, err
		}
		lastErr = err

		taken, err := s.messageRepo.ListGeneratedStrategies(dbc, msg.TestID)
		if err != nil {
			return false, err
		}
		for _, tag := range taken {
			if tag == *msg.AIPromptingStrategy {
				msg.MessageOrder = nil
				return false, nil
			}
		}
	}
	msg.MessageOrder = nil
	return false, fmt.Errorf("message_order contention after %d attempts: %w", storeAttempts, lastErr)
}

// generate runs one LLM call per strategy. Results keep the order of strategies
// and a failure never cancels the other calls.
func (s *composerService) generate(ctx context.Context, strategies []humanness.Strategy, userPrompt string) []generation {
	out := make([]generation, len(strategies))
	run := func(ctx context.Context, i int) {
		start := time.Now()
		defer func() {
			observability.Current().ObserveGeneration(strategies[i].String(), out[i].err == nil, time.Since(start))
		}()
		system := promptstyle.ApplySystem(mh.SystemPrompt(strategies[i]), "json")
		raw, err := s.llm.GenerateText(ctx, system, userPrompt)
		if err != nil {
			out[i] = generation{err: fmt.Errorf("llm: %w", err)}
			return
		}
		q, err := mh.DecodeQualification(raw)
		if err != nil {
			out[i] = generation{err: err}
			return
		}
		out[i] = generation{qual: q}
	}

	if s.concurrency <= 1 {
		for i := range strategies {
			run(ctx, i)
		}
		return out
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range strategies {
		i := i
		g.Go(func() error {
			run(gctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *composerService) qualificationContext(dbc dbctx.Context, userID uuid.UUID, p *outreach.Prospect, channel string) mh.QualificationContext {
	qc := mh.QualificationContext{
		ProspectName: strings.TrimSpace(p.FirstName + " " + p.LastName),
		Title:        p.Title,
		Company:      p.Company,
		Industry:     p.Industry,
		Channel:      channel,
	}
	if at := strings.LastIndex(p.Email, "@"); at >= 0 {
		qc.EmailDomain = p.Email[at+1:]
	}
	if len(p.Enrichment) > 0 {
		var e outreach.Enrichment
		if err := json.Unmarshal(p.Enrichment, &e); err != nil {
			s.log.Warn("Prospect enrichment unreadable", "prospect_id", p.ID, "error", err)
		} else {
			qc.TalkingPoints = e.TalkingPoints
			qc.PainPoints = e.PainPoints
		}
	}
	if s.convRepo != nil {
		last, err := s.convRepo.LatestInbound(dbc, userID, p.ID)
		if err != nil {
			s.log.Warn("Latest reply lookup failed", "prospect_id", p.ID, "error", err)
		} else if last != nil {
			qc.LastReply = last.Content
		}
	}
	return qc
}

func (s *composerService) SubmitHumanMessages(ctx context.Context, userID, testID uuid.UUID, in []HumanMessageInput) ([]*types.Message, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.SubmitHumanMessages")
	defer span.End()

	if len(in) != HumanMessagesPerBatch {
		return nil, apierr.Validation("invalid_human_message_count", fmt.Errorf("exactly %d human messages required, got %d", HumanMessagesPerBatch, len(in)))
	}
	msgs := make([]*types.Message, 0, len(in))
	for i, m := range in {
		text := strings.TrimSpace(m.MessageText)
		if text == "" {
			return nil, apierr.Validation("invalid_human_message", fmt.Errorf("message %d: message_text required", i+1))
		}
		channel := strings.ToLower(strings.TrimSpace(m.Channel))
		if !humanness.ValidChannel(channel) {
			return nil, apierr.Validation("invalid_human_message", fmt.Errorf("message %d: unsupported channel %q", i+1, m.Channel))
		}
		msgs = append(msgs, &types.Message{
			TestID:      testID,
			MessageText: text,
			MessageType: humanness.MessageTypeHumanWritten,
			Channel:     channel,
			Subject:     strings.TrimSpace(m.Subject),
		})
	}

	if _, err := loadOwnedTest(dbctx.Context{Ctx: ctx}, s.testRepo, userID, testID, true); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.messageRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, msgs)
		return err
	})
	if err != nil {
		s.log.Error("Human message batch insert failed", "test_id", testID, "error", err)
		return nil, apierr.Internal("store_human_messages_failed", err)
	}
	return msgs, nil
}

// AssemblePresentationOrder gives every unordered message of the test a
// persisted position after the current maximum, in random order. Stored
// positions are never rewritten.
func (s *composerService) AssemblePresentationOrder(ctx context.Context, testID uuid.UUID) ([]*types.Message, error) {
	ctx, span := humannessTracer.Start(ctx, "humanness.AssemblePresentationOrder")
	defer span.End()

	var out []*types.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		msgs, err := s.messageRepo.ListByTest(dbc, testID)
		if err != nil {
			return err
		}
		currentMax := 0
		unordered := []uuid.UUID{}
		for _, m := range msgs {
			if m.PresentationOrder == nil {
				unordered = append(unordered, m.ID)
				continue
			}
			if *m.PresentationOrder > currentMax {
				currentMax = *m.PresentationOrder
			}
		}
		if len(unordered) == 0 {
			out = msgs
			return nil
		}

		s.rngMu.Lock()
		plan := mh.PlanPresentationOrder(currentMax, unordered, s.rng)
		s.rngMu.Unlock()
		for _, id := range unordered {
			if _, err := s.messageRepo.AssignPresentationOrder(dbc, id, plan[id]); err != nil {
				return err
			}
		}
		out, err = s.messageRepo.ListByTest(dbc, testID)
		return err
	})
	if err != nil {
		return nil, apierr.Internal("assemble_presentation_failed", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return presentationRank(out[i]) < presentationRank(out[j])
	})
	return out, nil
}

func presentationRank(m *types.Message) int {
	if m.PresentationOrder == nil {
		return int(^uint(0) >> 1)
	}
	return *m.PresentationOrder
}
