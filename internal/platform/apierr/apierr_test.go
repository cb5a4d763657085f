package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamErr struct{ status int }

func (e *upstreamErr) Error() string       { return fmt.Sprintf("upstream %d", e.status) }
func (e *upstreamErr) HTTPStatusCode() int { return e.status }

func TestExternalUnavailableIncludesUpstreamStatus(t *testing.T) {
	err := ExternalUnavailable("email_send_failed", "email service", &upstreamErr{status: 503})
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Contains(t, err.Error(), "upstream status 503")

	plain := ExternalUnavailable("llm_failed", "llm", errors.New("dial tcp: timeout"))
	assert.NotContains(t, plain.Error(), "upstream status")
}

func TestStatusOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("test_not_found", errors.New("missing")))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))

	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "test_not_found", ae.Code)
}
