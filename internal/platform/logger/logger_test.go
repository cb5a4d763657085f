package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"panelist_email", "jane@example.com",
		"user_id", "5d0e4c3a-0000-0000-0000-000000000001",
		"test_id", "abc",
		"dangling",
	})

	assert.Equal(t, "[REDACTED]", out[1])
	assert.Contains(t, out[3], "hash:")
	assert.Equal(t, "abc", out[5])
	assert.Equal(t, "dangling", out[6])
}

func TestLooksLikeJWT(t *testing.T) {
	assert.True(t, looksLikeJWT("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"))
	assert.False(t, looksLikeJWT("not.a.jwt"))
	assert.False(t, looksLikeJWT("plain"))
}
