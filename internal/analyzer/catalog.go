package analyzer

import (
	_ "embed" // use go embed to import the rule catalog
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var catalogContent string

// Rule describes one issue type
type Rule struct {
	Type        IssueType `toml:"type" json:"type" yaml:"type"`
	Severity    Severity  `toml:"severity" json:"severity" yaml:"severity"`
	Title       string    `toml:"title" json:"title" yaml:"title"`
	Description string    `toml:"description" json:"description" yaml:"description"`
}

// Catalog maps issue types to their rule metadata
type Catalog struct {
	Rules  []Rule `toml:"rule"`
	byType map[IssueType]Rule
}

// LoadCatalog decodes a TOML rule catalog
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}

	c.byType = make(map[IssueType]Rule, len(c.Rules))
	for i, rule := range c.Rules {
		if rule.Type == "" {
			return nil, errors.New("rule without type")
		}
		if _, dup := c.byType[rule.Type]; dup {
			return nil, fmt.Errorf("duplicate rule: %s", rule.Type)
		}
		rule.Description = strings.TrimSpace(rule.Description)
		c.Rules[i] = rule
		c.byType[rule.Type] = rule
	}
	return &c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(strings.NewReader(catalogContent))
		if err != nil {
			panic(fmt.Sprintf("embedded rule catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup returns the rule for t
func (c *Catalog) Lookup(t IssueType) (Rule, bool) {
	rule, ok := c.byType[t]
	return rule, ok
}

// Severity returns the catalog severity for t, Low if unknown
func (c *Catalog) Severity(t IssueType) Severity {
	return c.byType[t].Severity
}

// Title returns the display title for t, falling back to the type name
func (c *Catalog) Title(t IssueType) string {
	if rule, ok := c.byType[t]; ok && rule.Title != "" {
		return rule.Title
	}
	return string(t)
}
