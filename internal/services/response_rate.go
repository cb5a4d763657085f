package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/outreach-backend/internal/data/repos"
	"github.com/yungbote/outreach-backend/internal/modules/responserate"
	"github.com/yungbote/outreach-backend/internal/platform/apierr"
	"github.com/yungbote/outreach-backend/internal/platform/dbctx"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

var responseRateTracer = otel.Tracer("responserate")

type ResponseRateResult struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	MessagesSent    int64     `json:"messages_sent"`
	RepliesReceived int64     `json:"replies_received"`
	ResponseRate    float64   `json:"response_rate"`
	Threshold       float64   `json:"threshold"`
	BelowThreshold  bool      `json:"below_threshold"`
}

type DailyRate struct {
	Date         string  `json:"date"`
	MessagesSent int64   `json:"messages_sent"`
	Replies      int64   `json:"replies_received"`
	ResponseRate float64 `json:"response_rate"`
}

type ResponseRateTrend struct {
	Days              int                `json:"days"`
	DailyRates        []DailyRate        `json:"daily_rates"`
	Trend             responserate.Trend `json:"trend"`
	FirstHalfAverage  float64            `json:"first_half_average"`
	SecondHalfAverage float64            `json:"second_half_average"`
	AverageRate       float64            `json:"average_rate"`
	Threshold         float64            `json:"threshold"`
	BelowThreshold    bool               `json:"below_threshold"`
}

type ResponseRateService interface {
	CalculateResponseRate(ctx context.Context, userID uuid.UUID, start, end time.Time) (*ResponseRateResult, error)
	TrackResponseRateTrend(ctx context.Context, userID uuid.UUID, days int) (*ResponseRateTrend, error)
}

type responseRateService struct {
	db        *gorm.DB
	log       *logger.Logger
	convRepo  repos.ConversationLogRepo
	threshold float64
	now       func() time.Time
}

func NewResponseRateService(db *gorm.DB, baseLog *logger.Logger, convRepo repos.ConversationLogRepo, threshold float64) ResponseRateService {
	if threshold <= 0 {
		threshold = responserate.DefaultThreshold
	}
	return &responseRateService{
		db:        db,
		log:       baseLog.With("service", "ResponseRateService"),
		convRepo:  convRepo,
		threshold: threshold,
		now:       time.Now,
	}
}

func (s *responseRateService) CalculateResponseRate(ctx context.Context, userID uuid.UUID, start, end time.Time) (*ResponseRateResult, error) {
	ctx, span := responseRateTracer.Start(ctx, "responserate.CalculateResponseRate")
	defer span.End()

	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return nil, apierr.Validation("invalid_range", fmt.Errorf("end must be after start"))
	}
	return s.window(ctx, userID, start, end)
}

func (s *responseRateService) window(ctx context.Context, userID uuid.UUID, start, end time.Time) (*ResponseRateResult, error) {
	dbc := dbctx.Context{Ctx: ctx}
	sent, err := s.convRepo.CountOutboundAI(dbc, userID, start, end)
	if err != nil {
		return nil, apierr.Internal("count_outbound_failed", err)
	}
	replies, err := s.convRepo.CountInbound(dbc, userID, start, end)
	if err != nil {
		return nil, apierr.Internal("count_inbound_failed", err)
	}
	rate := responserate.Rate(sent, replies)
	return &ResponseRateResult{
		Start:           start,
		End:             end,
		MessagesSent:    sent,
		RepliesReceived: replies,
		ResponseRate:    responserate.Round2(rate),
		Threshold:       s.threshold,
		BelowThreshold:  rate < s.threshold,
	}, nil
}

// TrackResponseRateTrend walks the last days UTC days one at a time, oldest first.
func (s *responseRateService) TrackResponseRateTrend(ctx context.Context, userID uuid.UUID, days int) (*ResponseRateTrend, error) {
	ctx, span := responseRateTracer.Start(ctx, "responserate.TrackResponseRateTrend")
	defer span.End()

	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	days = responserate.ClampDays(days)
	span.SetAttributes(attribute.Int("days", days))

	windows := responserate.DailyWindows(s.now(), days)
	daily := make([]DailyRate, 0, len(windows))
	rates := make([]float64, 0, len(windows))
	for _, w := range windows {
		res, err := s.window(ctx, userID, w[0], w[1])
		if err != nil {
			return nil, err
		}
		raw := responserate.Rate(res.MessagesSent, res.RepliesReceived)
		rates = append(rates, raw)
		daily = append(daily, DailyRate{
			Date:         w[0].Format("2006-01-02"),
			MessagesSent: res.MessagesSent,
			Replies:      res.RepliesReceived,
			ResponseRate: res.ResponseRate,
		})
	}

	trend, firstAvg, secondAvg := responserate.Classify(rates)
	avg := responserate.Mean(rates)
	s.log.Debug("Response rate trend", "user_id", userID, "days", days, "trend", trend)
	return &ResponseRateTrend{
		Days:              days,
		DailyRates:        daily,
		Trend:             trend,
		FirstHalfAverage:  responserate.Round2(firstAvg),
		SecondHalfAverage: responserate.Round2(secondAvg),
		AverageRate:       responserate.Round2(avg),
		Threshold:         s.threshold,
		BelowThreshold:    avg < s.threshold,
	}, nil
}
