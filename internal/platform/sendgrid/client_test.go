package sendgrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

func TestSendBuildsMailSendPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		var body mailSendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "noreply@example.com", body.From.Email)
		require.Len(t, body.Personalizations, 1)
		assert.Equal(t, "panel@example.com", body.Personalizations[0].To[0].Email)
		require.Len(t, body.Content, 1)
		assert.Equal(t, "text/html", body.Content[0].Type)
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, DefaultFromEmail: "noreply@example.com"})
	require.NoError(t, err)

	res, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "panel@example.com"}},
		Subject: "Invitation",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "msg-1", res.MessageID)
}

func TestSendSurfacesProviderError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"message":"sender not verified"}]}`))
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, DefaultFromEmail: "noreply@example.com", MaxRetries: 2})
	require.NoError(t, err)

	_, err = c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "panel@example.com"}},
		Subject: "Invitation",
		Text:    "hi",
	})
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.HTTPStatusCode())
	assert.Contains(t, err.Error(), "sender not verified")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSendValidatesRequest(t *testing.T) {
	c, err := New(logger.Nop(), Config{APIKey: "k", DefaultFromEmail: "noreply@example.com"})
	require.NoError(t, err)
	_, err = c.Send(context.Background(), SendEmailRequest{Subject: "s", Text: "t"})
	assert.ErrorContains(t, err, "To required")
}
