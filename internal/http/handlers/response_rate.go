package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/outreach-backend/internal/http/response"
	"github.com/yungbote/outreach-backend/internal/modules/responserate"
	"github.com/yungbote/outreach-backend/internal/services"
)

type ResponseRateHandler struct {
	rates services.ResponseRateService
	now   func() time.Time
}

func NewResponseRateHandler(rates services.ResponseRateService) *ResponseRateHandler {
	return &ResponseRateHandler{rates: rates, now: time.Now}
}

func daysQuery(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return responserate.DefaultDays, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_days", errors.New("days must be an integer"))
		return 0, false
	}
	return responserate.ClampDays(n), true
}

// GET /api/humanness-tests/response-rate?days=N
//
// Rolling window ending now. The trend route with the same days uses UTC
// calendar days instead.
func (h *ResponseRateHandler) ResponseRate(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	days, ok := daysQuery(c)
	if !ok {
		return
	}
	start, end := responserate.RollingWindow(h.now(), days)
	res, err := h.rates.CalculateResponseRate(c.Request.Context(), userID, start, end)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/humanness-tests/response-rate/trend?days=N
//
// One bucket per UTC calendar day, the last being today so far.
func (h *ResponseRateHandler) Trend(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	days, ok := daysQuery(c)
	if !ok {
		return
	}
	trend, err := h.rates.TrackResponseRateTrend(c.Request.Context(), userID, days)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, trend)
}
