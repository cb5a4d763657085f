package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/outreach-backend/internal/platform/envutil"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests    *CounterVec
	apiLatency     *HistogramVec
	apiInflight    *Gauge
	generations    *CounterVec
	invitations    *CounterVec
	responses      *CounterVec
	codifications  *CounterVec
	detectionRuns  *CounterVec
	llmLatency     *HistogramVec
	emailSendTotal *CounterVec
}

var (
	initMu   sync.Mutex
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current returns the process metrics, or nil when disabled. Every method is
// nil-safe so callers never branch on it.
func Current() *Metrics {
	initMu.Lock()
	defer initMu.Unlock()
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initMu.Lock()
	defer initMu.Unlock()
	if instance == nil {
		instance = New()
		if log != nil {
			log.Info("Metrics enabled")
		}
	}
	return instance
}

// New builds an unregistered Metrics. Init installs one process-wide.
func New() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("outreach_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"outreach_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight:   NewGauge("outreach_api_inflight_requests", "In-flight API requests."),
		generations:   NewCounterVec("outreach_humanness_generations_total", "AI message generations by strategy/status.", []string{"strategy", "status"}),
		invitations:   NewCounterVec("outreach_humanness_invitations_total", "Panelist invitations by status.", []string{"status"}),
		responses:     NewCounterVec("outreach_humanness_responses_total", "Panelist judgments by outcome.", []string{"outcome"}),
		codifications: NewCounterVec("outreach_humanness_codifications_total", "Codified strategies.", []string{"strategy"}),
		detectionRuns: NewCounterVec("outreach_humanness_detection_runs_total", "Detection analytics recomputations by target outcome.", []string{"target_met"}),
		llmLatency: NewHistogramVec(
			"outreach_llm_request_duration_seconds",
			"LLM generation latency in seconds by status.",
			[]string{"status"},
			[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90},
		),
		emailSendTotal: NewCounterVec("outreach_email_send_total", "Outbound email sends by status.", []string{"status"}),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.generations,
		m.invitations,
		m.responses,
		m.codifications,
		m.detectionRuns,
		m.llmLatency,
		m.emailSendTotal,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveGeneration(strategy string, ok bool, dur time.Duration) {
	if m == nil {
		return
	}
	status := statusLabel(ok)
	m.generations.Inc(strategy, status)
	m.llmLatency.Observe(dur.Seconds(), status)
}

func (m *Metrics) IncInvitation(ok bool) {
	if m == nil {
		return
	}
	status := statusLabel(ok)
	m.invitations.Inc(status)
	m.emailSendTotal.Inc(status)
}

func (m *Metrics) IncResponse(identifiedAsAI bool) {
	if m == nil {
		return
	}
	outcome := "judged_human"
	if identifiedAsAI {
		outcome = "judged_ai"
	}
	m.responses.Inc(outcome)
}

func (m *Metrics) IncCodification(strategy string) {
	if m == nil {
		return
	}
	m.codifications.Inc(strategy)
}

func (m *Metrics) IncDetectionRun(targetMet bool) {
	if m == nil {
		return
	}
	m.detectionRuns.Inc(strconv.FormatBool(targetMet))
}

func statusLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
