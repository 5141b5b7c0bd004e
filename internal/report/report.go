// Package report groups analyzer findings into the audit report and writes
// it in the supported formats.
package report

import (
	"sort"

	"github.com/gubarz/blockaudit/internal/analyzer"
	"github.com/gubarz/blockaudit/internal/parser"
)

// Entry is one code block together with its issues
type Entry struct {
	Block  parser.CodeBlock `json:"block" yaml:"block"`
	Issues []analyzer.Issue `json:"issues" yaml:"issues"`
}

// Section holds the flagged blocks under one section heading
type Section struct {
	Heading string  `json:"heading" yaml:"heading"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// SmellCount is one row of the issue frequency table
type SmellCount struct {
	Type  analyzer.IssueType `json:"type" yaml:"type"`
	Count int                `json:"count" yaml:"count"`
}

// Report is the derived view over all analyzed blocks
type Report struct {
	Document         string       `json:"document,omitempty" yaml:"document,omitempty"`
	TotalBlocks      int          `json:"total_blocks" yaml:"total_blocks"`
	BlocksWithIssues int          `json:"blocks_with_issues" yaml:"blocks_with_issues"`
	TotalIssues      int          `json:"total_issues" yaml:"total_issues"`
	Sections         []Section    `json:"sections" yaml:"sections"`
	Smells           []SmellCount `json:"smells" yaml:"smells"`
	Refactor         []Entry      `json:"refactor" yaml:"refactor"`
}

// refactorTypes always mark a block for refactoring
var refactorTypes = map[analyzer.IssueType]bool{
	analyzer.LongFunction:    true,
	analyzer.LongCodeBlock:   true,
	analyzer.UndefinedMethod: true,
}

// NeedsRefactor reports whether a block with these issues should be
// refactored: any high severity issue, two or more issues, or any issue of
// a refactor type.
func NeedsRefactor(issues []analyzer.Issue) bool {
	if len(issues) >= 2 {
		return true
	}
	for _, issue := range issues {
		if issue.Severity == analyzer.High || refactorTypes[issue.Type] {
			return true
		}
	}
	return false
}

// Analyze runs a over every block, in document order
func Analyze(blocks []parser.CodeBlock, a *analyzer.Analyzer) []Entry {
	entries := make([]Entry, 0, len(blocks))
	for _, block := range blocks {
		entries = append(entries, Entry{Block: block, Issues: a.Analyze(block)})
	}
	return entries
}

// Build aggregates analyzed blocks. Only blocks with issues appear in the
// sections; sections are ordered by heading text.
func Build(entries []Entry) *Report {
	r := &Report{TotalBlocks: len(entries)}

	bySection := make(map[string][]Entry)
	counts := make(map[analyzer.IssueType]int)
	var order []analyzer.IssueType

	for _, entry := range entries {
		if len(entry.Issues) == 0 {
			continue
		}
		r.BlocksWithIssues++
		r.TotalIssues += len(entry.Issues)

		heading := entry.Block.SectionHeading
		bySection[heading] = append(bySection[heading], entry)

		for _, issue := range entry.Issues {
			if _, seen := counts[issue.Type]; !seen {
				order = append(order, issue.Type)
			}
			counts[issue.Type]++
		}

		if NeedsRefactor(entry.Issues) {
			r.Refactor = append(r.Refactor, entry)
		}
	}

	headings := make([]string, 0, len(bySection))
	for heading := range bySection {
		headings = append(headings, heading)
	}
	sort.Strings(headings)
	for _, heading := range headings {
		r.Sections = append(r.Sections, Section{Heading: heading, Entries: bySection[heading]})
	}

	for _, t := range order {
		r.Smells = append(r.Smells, SmellCount{Type: t, Count: counts[t]})
	}
	// Stable keeps first-encounter order among equal counts
	sort.SliceStable(r.Smells, func(i, j int) bool {
		return r.Smells[i].Count > r.Smells[j].Count
	})

	return r
}
