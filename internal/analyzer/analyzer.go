package analyzer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gubarz/blockaudit/internal/parser"
)

// Options holds the thresholds and name lists used by the checks
type Options struct {
	Language         string   // Tag that gets the syntax-aware checks
	MaxBlockLines    int      // long_code_block above this many lines
	MaxFunctionLines int      // long_function above this many lines
	DocstringWindow  int      // Runes of a definition searched for a docstring
	MinCommentRatio  float64  // low_comment_ratio below this ratio
	MinCommentLines  int      // ...only for blocks longer than this
	UndefinedMethods []string // Call sites that must be defined in the block
	RequiredImports  []string // Modules whose attribute use needs an import
}

// DefaultOptions returns the thresholds the tool ships with
func DefaultOptions() Options {
	return Options{
		Language:         "python",
		MaxBlockLines:    100,
		MaxFunctionLines: 50,
		DocstringWindow:  200,
		MinCommentRatio:  0.1,
		MinCommentLines:  10,
		UndefinedMethods: []string{"calculate_burn_rate_for_window", "get_threshold"},
		RequiredImports:  []string{"statistics"},
	}
}

// Check is one independent heuristic. Run must not depend on other checks.
type Check struct {
	Name      string
	Universal bool // Runs for every language, not just the audited one
	Run       func(block parser.CodeBlock, opts Options) []Issue
}

// DefaultChecks returns the checks in reporting order
func DefaultChecks() []Check {
	return []Check{
		{Name: string(LongFunction), Run: checkLongFunctions},
		{Name: string(MissingDocstring), Run: checkDocstrings},
		{Name: string(LowCommentRatio), Run: checkCommentRatio},
		{Name: string(UndefinedMethod), Run: checkUndefinedMethods},
		{Name: string(MissingImport), Run: checkMissingImports},
		{Name: string(LongCodeBlock), Universal: true, Run: checkBlockLength},
	}
}

// Analyzer runs a fixed list of checks over code blocks
type Analyzer struct {
	opts   Options
	checks []Check
	log    zerolog.Logger
}

// New creates an analyzer with the default checks
func New(opts Options) *Analyzer {
	return NewWithChecks(opts, DefaultChecks()...)
}

// NewWithChecks creates an analyzer with an explicit check list
func NewWithChecks(opts Options, checks ...Check) *Analyzer {
	return &Analyzer{
		opts:   opts,
		checks: checks,
		log:    zerolog.Nop(),
	}
}

// WithLogger sets the logger used for recovered check failures
func (a *Analyzer) WithLogger(log zerolog.Logger) *Analyzer {
	a.log = log
	return a
}

// Options returns the analyzer's options
func (a *Analyzer) Options() Options {
	return a.opts
}

// Audited reports whether block gets the language-specific checks
func (a *Analyzer) Audited(block parser.CodeBlock) bool {
	return a.opts.Language != "" && strings.EqualFold(block.Language, a.opts.Language)
}

// Analyze runs every applicable check and returns the combined issues.
// A check that panics contributes nothing.
func (a *Analyzer) Analyze(block parser.CodeBlock) []Issue {
	audited := a.Audited(block)

	var issues []Issue
	for _, check := range a.checks {
		if !check.Universal && !audited {
			continue
		}
		issues = append(issues, a.run(check, block)...)
	}
	return issues
}

func (a *Analyzer) run(check Check, block parser.CodeBlock) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Debug().
				Str("check", check.Name).
				Int("start_line", block.StartLine).
				Str("panic", fmt.Sprint(r)).
				Msg("check failed, skipping")
			issues = nil
		}
	}()
	return check.Run(block, a.opts)
}
