package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/platform/authtoken"
	"github.com/yungbote/outreach-backend/internal/platform/ctxutil"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

func authRouter(t *testing.T, verifier authtoken.Verifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(logger.Nop(), verifier).RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.UserID.String())
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	verifier, err := authtoken.New("test-secret")
	require.NoError(t, err)
	r := authRouter(t, verifier)
	userID := uuid.New()
	token, err := verifier.Issue(userID, "owner@example.com", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		c.String(http.StatusOK, td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("a", 300))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
}

func TestInboundID(t *testing.T) {
	assert.Equal(t, "abc-1", inboundID(" abc-1 "))
	assert.Equal(t, "", inboundID("has space"))
	assert.Equal(t, "", inboundID("line\nbreak"))
	assert.Equal(t, "", inboundID(strings.Repeat("x", maxInboundIDLen+1)))
}
