package humanness

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
)

//go:embed catalog.yaml
var catalogYAML []byte

type TemplateSpec struct {
	Name    string `yaml:"name"`
	Channel string `yaml:"channel"`
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// Catalog maps each strategy to the templates codification materializes for it.
type Catalog struct {
	entries map[domain.Strategy][]TemplateSpec
}

type catalogFile struct {
	Strategies map[string][]TemplateSpec `yaml:"strategies"`
}

// LoadCatalog parses and validates a catalog document.
func LoadCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := &Catalog{entries: map[domain.Strategy][]TemplateSpec{}}
	for tag, specs := range f.Strategies {
		s, err := domain.ParseStrategy(tag)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if s.IsBaseline() && len(specs) > 0 {
			return nil, fmt.Errorf("catalog: %s is the control condition and cannot carry templates", s)
		}
		for i, spec := range specs {
			spec.Name = strings.TrimSpace(spec.Name)
			spec.Channel = strings.ToLower(strings.TrimSpace(spec.Channel))
			spec.Subject = strings.TrimSpace(spec.Subject)
			spec.Body = strings.TrimSpace(spec.Body)
			if spec.Name == "" || spec.Body == "" {
				return nil, fmt.Errorf("catalog: %s entry %d needs name and body", s, i)
			}
			if !domain.ValidChannel(spec.Channel) {
				return nil, fmt.Errorf("catalog: %s entry %q has invalid channel %q", s, spec.Name, spec.Channel)
			}
			specs[i] = spec
		}
		c.entries[s] = specs
	}
	return c, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// For returns a copy of the templates for s. The baseline strategy has none.
func (c *Catalog) For(s domain.Strategy) []TemplateSpec {
	if c == nil {
		return nil
	}
	specs := c.entries[s]
	out := make([]TemplateSpec, len(specs))
	copy(out, specs)
	return out
}
