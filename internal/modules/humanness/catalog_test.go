package humanness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Empty(t, c.For(domain.StrategyBaseline))
	for _, s := range domain.AllStrategies() {
		if s.IsBaseline() {
			continue
		}
		specs := c.For(s)
		assert.NotEmpty(t, specs, s.String())
		for _, spec := range specs {
			assert.True(t, domain.ValidChannel(spec.Channel))
			assert.NotEmpty(t, spec.Body)
		}
	}
}

func TestLoadCatalogRejectsUnknownStrategy(t *testing.T) {
	if _, err := LoadCatalog([]byte("strategies:\n  strategy_9:\n    - name: x\n      channel: email\n      body: y\n")); err == nil {
		t.Fatalf("expected catalog error")
	}
}

func TestLoadCatalogRejectsBaselineEntries(t *testing.T) {
	if _, err := LoadCatalog([]byte("strategies:\n  strategy_1:\n    - name: x\n      channel: email\n      body: y\n")); err == nil {
		t.Fatalf("expected catalog error")
	}
}

func TestLoadCatalogRejectsBadChannel(t *testing.T) {
	if _, err := LoadCatalog([]byte("strategies:\n  strategy_2:\n    - name: x\n      channel: fax\n      body: y\n")); err == nil {
		t.Fatalf("expected catalog error")
	}
}
