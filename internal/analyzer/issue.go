package analyzer

import (
	"fmt"
	"strings"
)

// Severity orders issues by how urgently they need attention
type Severity int

const (
	// Low severity, cosmetic
	Low Severity = iota
	// Medium severity, hurts readability
	Medium
	// High severity, the sample is likely broken
	High
)

// String converts a Severity into its lowercase name
func (s Severity) String() string {
	switch s {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return "undefined"
}

// MarshalText renders the severity by name for json, yaml and toml
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name, case-insensitively
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// ParseSeverity parses a severity name
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "high":
		return High, nil
	case "medium":
		return Medium, nil
	case "low":
		return Low, nil
	}
	return Low, fmt.Errorf("unknown severity: %q", name)
}

// IssueType identifies the check that produced an issue
type IssueType string

const (
	LongCodeBlock    IssueType = "long_code_block"
	LongFunction     IssueType = "long_function"
	MissingDocstring IssueType = "missing_docstring"
	LowCommentRatio  IssueType = "low_comment_ratio"
	UndefinedMethod  IssueType = "undefined_method"
	MissingImport    IssueType = "missing_import"
)

// IssueTypes lists every type the analyzer can produce
var IssueTypes = []IssueType{
	LongCodeBlock,
	LongFunction,
	MissingDocstring,
	LowCommentRatio,
	UndefinedMethod,
	MissingImport,
}

// Issue is one heuristic finding against a code block
type Issue struct {
	Type     IssueType `json:"type" yaml:"type"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Message  string    `json:"message" yaml:"message"`
	Location string    `json:"location" yaml:"location"`
}

// newIssue creates an issue with the catalog severity for t
func newIssue(t IssueType, location, format string, args ...interface{}) Issue {
	return Issue{
		Type:     t,
		Severity: DefaultCatalog().Severity(t),
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}
