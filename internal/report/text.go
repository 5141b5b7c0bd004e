package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/blockaudit/internal/analyzer"
)

const ruleWidth = 80

// Highlighter decorates parts of the text report, typically with colour
type Highlighter interface {
	Severity(sev analyzer.Severity, text string) string
	Title(text string) string
}

type plainHighlighter struct{}

func (plainHighlighter) Severity(_ analyzer.Severity, text string) string { return text }
func (plainHighlighter) Title(text string) string                         { return text }

// Plain leaves the text report undecorated
var Plain Highlighter = plainHighlighter{}

// SeverityIcon returns the marker printed before each issue
func SeverityIcon(sev analyzer.Severity) string {
	switch sev {
	case analyzer.High:
		return "🔴"
	case analyzer.Medium:
		return "🟡"
	case analyzer.Low:
		return "🟢"
	}
	return "⚪"
}

// WriteText writes the report in the plain-text layout
func WriteText(w io.Writer, r *Report, hl Highlighter) error {
	if hl == nil {
		hl = Plain
	}
	bw := bufio.NewWriter(w)

	banner := func(title string) {
		fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
		fmt.Fprintln(bw, hl.Title(title))
		fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
	}

	banner("CODE BLOCK VALIDATION REPORT")
	fmt.Fprintf(bw, "\nTotal code blocks: %d\n", r.TotalBlocks)
	fmt.Fprintf(bw, "Blocks with issues: %d\n", r.BlocksWithIssues)
	fmt.Fprintf(bw, "Total issues found: %d\n\n", r.TotalIssues)

	banner("ISSUES BY SECTION")
	for _, section := range r.Sections {
		fmt.Fprintf(bw, "\n## %s\n", hl.Title(section.Heading))
		fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))

		for _, entry := range section.Entries {
			b := entry.Block
			fmt.Fprintf(bw, "\n**Code Block** (lines %d-%d, %s, %d lines)\n", b.StartLine, b.EndLine, b.Language, b.LineCount)
			fmt.Fprintf(bw, "**Full Path:** %s\n", b.Path())

			for _, issue := range entry.Issues {
				label := fmt.Sprintf("[%s]", strings.ToUpper(issue.Severity.String()))
				fmt.Fprintf(bw, "  %s %s %s\n", SeverityIcon(issue.Severity), hl.Severity(issue.Severity, label), issue.Type)
				fmt.Fprintf(bw, "     %s\n", issue.Message)
				fmt.Fprintf(bw, "     Location: %s\n", issue.Location)
			}
			fmt.Fprintln(bw)
		}
	}

	banner("CODE SMELLS SUMMARY")
	for _, smell := range r.Smells {
		fmt.Fprintf(bw, "%s: %d\n", smell.Type, smell.Count)
	}

	fmt.Fprintln(bw)
	banner("CODE BLOCKS REQUIRING REFACTORING")
	if len(r.Refactor) == 0 {
		fmt.Fprintln(bw, "\nNo code blocks require urgent refactoring.")
		return bw.Flush()
	}
	for _, entry := range r.Refactor {
		b := entry.Block
		fmt.Fprintf(bw, "\n**%s**\n", hl.Title(b.SectionHeading))
		fmt.Fprintf(bw, "  Full Path: %s\n", b.Path())
		fmt.Fprintf(bw, "  Lines: %d-%d\n", b.StartLine, b.EndLine)
		fmt.Fprintf(bw, "  Language: %s, Size: %d lines\n", b.Language, b.LineCount)
		fmt.Fprintf(bw, "  Issues: %d\n", len(entry.Issues))
		for _, issue := range entry.Issues {
			fmt.Fprintf(bw, "    - [%s] %s: %s\n", hl.Severity(issue.Severity, issue.Severity.String()), issue.Type, issue.Message)
		}
	}
	return bw.Flush()
}
