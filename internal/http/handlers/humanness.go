package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/outreach-backend/internal/http/response"
	"github.com/yungbote/outreach-backend/internal/services"
)

type HumannessHandler struct {
	registry    services.RegistryService
	composer    services.ComposerService
	collector   services.CollectorService
	analytics   services.AnalyticsService
	codifier    services.CodifierService
	preferences services.StrategyPreferenceService
}

func NewHumannessHandler(
	registry services.RegistryService,
	composer services.ComposerService,
	collector services.CollectorService,
	analytics services.AnalyticsService,
	codifier services.CodifierService,
	preferences services.StrategyPreferenceService,
) *HumannessHandler {
	return &HumannessHandler{
		registry:    registry,
		composer:    composer,
		collector:   collector,
		analytics:   analytics,
		codifier:    codifier,
		preferences: preferences,
	}
}

type createTestRequest struct {
	TestName    string `json:"test_name" binding:"required"`
	TestVersion string `json:"test_version"`
}

type addPanelistRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	FirstName    string  `json:"first_name" binding:"max=100"`
	LastName     string  `json:"last_name" binding:"max=100"`
	Company      string  `json:"company" binding:"max=200"`
	Role         string  `json:"role" binding:"max=200"`
	Compensation float64 `json:"compensation" binding:"gte=0"`
}

type bulkInviteRequest struct {
	PanelistIDs []uuid.UUID `json:"panelist_ids" binding:"required,min=1"`
}

type generateMessagesRequest struct {
	ProspectID uuid.UUID `json:"prospect_id" binding:"required"`
	Channel    string    `json:"channel" binding:"required"`
}

type humanMessagesRequest struct {
	Messages []services.HumanMessageInput `json:"messages" binding:"required"`
}

type submitResponseRequest struct {
	MessageID           uuid.UUID `json:"message_id"`
	IdentifiedAsAI      *bool     `json:"identified_as_ai"`
	ConfidenceLevel     *int      `json:"confidence_level"`
	Reasoning           string    `json:"reasoning" binding:"max=2000"`
	ResponseTimeSeconds *float64  `json:"response_time_seconds"`
}

type codifyRequest struct {
	StrategyName *string `json:"strategy_name"`
}

// GET /api/humanness-tests
func (h *HumannessHandler) ListTests(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	tests, err := h.registry.ListTests(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tests": tests})
}

// POST /api/humanness-tests
func (h *HumannessHandler) CreateTest(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	var req createTestRequest
	if !bindJSON(c, &req, false) {
		return
	}
	test, err := h.registry.CreateTest(c.Request.Context(), userID, req.TestName, req.TestVersion)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"test": test})
}

// GET /api/humanness-tests/:id
func (h *HumannessHandler) GetTest(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	test, err := h.registry.GetTest(c.Request.Context(), userID, testID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"test": test})
}

// POST /api/humanness-tests/:id/panelists
func (h *HumannessHandler) AddPanelist(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	var req addPanelistRequest
	if !bindJSON(c, &req, false) {
		return
	}
	p, err := h.registry.AddPanelist(c.Request.Context(), userID, testID, services.PanelistInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		Role:         req.Role,
		Compensation: req.Compensation,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"panelist": p})
}

// GET /api/humanness-tests/:id/panelists
func (h *HumannessHandler) ListPanelists(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	panelists, err := h.registry.ListPanelists(c.Request.Context(), userID, testID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"panelists": panelists})
}

// POST /api/humanness-tests/:id/panelists/:panelistId/invite
func (h *HumannessHandler) InvitePanelist(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	panelistID, ok := uuidParam(c, "panelistId", "invalid_panelist_id")
	if !ok {
		return
	}
	p, err := h.registry.SendPanelistInvitation(c.Request.Context(), userID, testID, panelistID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"panelist": p})
}

// POST /api/humanness-tests/:id/panelists/bulk-invite
func (h *HumannessHandler) BulkInvite(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	var req bulkInviteRequest
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := h.registry.BulkInvitePanelists(c.Request.Context(), userID, testID, req.PanelistIDs)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/humanness-tests/:id/generate-messages
func (h *HumannessHandler) GenerateMessages(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	var req generateMessagesRequest
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := h.composer.GenerateAIMessages(c.Request.Context(), userID, testID, req.ProspectID, req.Channel)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/humanness-tests/:id/human-messages
func (h *HumannessHandler) SubmitHumanMessages(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	var req humanMessagesRequest
	if !bindJSON(c, &req, false) {
		return
	}
	msgs, err := h.composer.SubmitHumanMessages(c.Request.Context(), userID, testID, req.Messages)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"messages": msgs})
}

// GET /api/humanness-tests/:id/panelist/:panelistId/messages (public)
func (h *HumannessHandler) PanelistMessages(c *gin.Context) {
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	panelistID, ok := uuidParam(c, "panelistId", "invalid_panelist_id")
	if !ok {
		return
	}
	msgs, err := h.collector.GetPanelistMessages(c.Request.Context(), testID, panelistID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// POST /api/humanness-tests/:id/panelist/:panelistId/responses (public)
func (h *HumannessHandler) SubmitResponse(c *gin.Context) {
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	panelistID, ok := uuidParam(c, "panelistId", "invalid_panelist_id")
	if !ok {
		return
	}
	var req submitResponseRequest
	if !bindJSON(c, &req, false) {
		return
	}
	receipt, err := h.collector.SubmitResponse(c.Request.Context(), testID, panelistID, services.ResponseInput{
		MessageID:           req.MessageID,
		IdentifiedAsAI:      req.IdentifiedAsAI,
		ConfidenceLevel:     req.ConfidenceLevel,
		Reasoning:           req.Reasoning,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, receipt)
}

// POST /api/humanness-tests/:id/panelist/:panelistId/complete (public)
func (h *HumannessHandler) CompletePanelist(c *gin.Context) {
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	panelistID, ok := uuidParam(c, "panelistId", "invalid_panelist_id")
	if !ok {
		return
	}
	if err := h.collector.CompletePanelist(c.Request.Context(), testID, panelistID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"completed": true})
}

// GET /api/humanness-tests/:id/analytics
func (h *HumannessHandler) Analytics(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	report, err := h.analytics.CalculateDetectionRate(c.Request.Context(), userID, testID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, report)
}

// GET /api/humanness-tests/:id/winning-strategy
func (h *HumannessHandler) WinningStrategy(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	win, err := h.analytics.GetWinningStrategy(c.Request.Context(), userID, testID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if win == nil {
		response.RespondError(c, http.StatusNotFound, "winning_strategy_not_found", errors.New("no analytics yet for this test"))
		return
	}
	response.RespondOK(c, win)
}

// POST /api/humanness-tests/:id/codify-strategy
func (h *HumannessHandler) CodifyStrategy(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	testID, ok := uuidParam(c, "id", "invalid_test_id")
	if !ok {
		return
	}
	var req codifyRequest
	if !bindJSON(c, &req, true) {
		return
	}
	res, err := h.codifier.CodifyWinningStrategy(c.Request.Context(), userID, testID, req.StrategyName)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/humanness-tests/strategy-preference
func (h *HumannessHandler) StrategyPreference(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	pref, err := h.preferences.GetActive(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"preference": pref})
}
