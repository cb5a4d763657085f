package openai

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

func assistantReply(text string) map[string]any {
	return map[string]any{
		"output": []any{
			map[string]any{
				"type": "message",
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text},
				},
			},
		},
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, retries int) Client {
	t.Helper()
	temp := 0.7
	c, err := New(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, Model: "m", MaxRetries: retries, Temperature: &temp})
	require.NoError(t, err)
	return c
}

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var body responsesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "m", body.Model)
		require.Len(t, body.Input, 2)
		assert.Contains(t, body.Input[0].Content, "OUTREACH_PROMPT_STYLE_V1")
		_ = json.NewEncoder(w).Encode(assistantReply(`{"reasoning":"hi"}`))
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv, 0).GenerateText(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"reasoning":"hi"}`, out)
}

func TestGenerateTextDropsRejectedTemperature(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		var body responsesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if n == 1 {
			assert.NotNil(t, body.Temperature)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unsupported parameter: 'temperature'"}}`))
			return
		}
		assert.Nil(t, body.Temperature)
		_ = json.NewEncoder(w).Encode(assistantReply("ok"))
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv, 0).GenerateText(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGenerateTextNonRetryableStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`bad key`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 3).GenerateText(context.Background(), "sys", "user")
	require.Error(t, err)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.HTTPStatusCode())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(logger.Nop(), Config{})
	assert.Error(t, err)
}
