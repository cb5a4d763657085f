package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/platform/apierr"
)

func serve(t *testing.T, h gin.HandlerFunc) (int, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestRespondAPIErrorKeepsClientMessages(t *testing.T) {
	code, env := serve(t, func(c *gin.Context) {
		RespondAPIError(c, apierr.Conflict("duplicate_panelist", errors.New("panelist already enrolled")))
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)
	assert.Equal(t, "duplicate_panelist", env.Code)
	assert.Equal(t, "panelist already enrolled", env.Error)
}

func TestRespondAPIErrorHidesInternalDetail(t *testing.T) {
	code, env := serve(t, func(c *gin.Context) {
		RespondAPIError(c, apierr.Internal("load_test_failed", errors.New("pq: connection refused")))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, internalErrorMessage, env.Error)
	assert.Equal(t, "load_test_failed", env.Code)

	code, env = serve(t, func(c *gin.Context) {
		RespondAPIError(c, errors.New("boom"))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, internalErrorMessage, env.Error)
}

func TestRespondOK(t *testing.T) {
	code, env := serve(t, func(c *gin.Context) {
		RespondOK(c, gin.H{"recorded": true})
	})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, map[string]any{"recorded": true}, env.Data)
	assert.Empty(t, env.Code)
}
