package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/gubarz/blockaudit/internal/analyzer"
)

// WriteMarkdown writes the report as a markdown document
func WriteMarkdown(w io.Writer, r *Report) error {
	var b strings.Builder
	catalog := analyzer.DefaultCatalog()

	b.WriteString("# Code Block Validation Report\n\n")
	if r.Document != "" {
		fmt.Fprintf(&b, "Document: `%s`\n\n", r.Document)
	}
	fmt.Fprintf(&b, "- Total code blocks: %d\n", r.TotalBlocks)
	fmt.Fprintf(&b, "- Blocks with issues: %d\n", r.BlocksWithIssues)
	fmt.Fprintf(&b, "- Total issues found: %d\n\n", r.TotalIssues)

	b.WriteString("## Issues by Section\n")
	for _, section := range r.Sections {
		fmt.Fprintf(&b, "\n### %s\n", section.Heading)
		for _, entry := range section.Entries {
			blk := entry.Block
			fmt.Fprintf(&b, "\n**Code Block** (lines %d-%d, %s, %d lines)  \n", blk.StartLine, blk.EndLine, blk.Language, blk.LineCount)
			fmt.Fprintf(&b, "**Full Path:** %s\n\n", blk.Path())
			for _, issue := range entry.Issues {
				fmt.Fprintf(&b, "- %s **[%s]** `%s`: %s (%s)\n",
					SeverityIcon(issue.Severity), strings.ToUpper(issue.Severity.String()),
					issue.Type, issue.Message, issue.Location)
			}
		}
	}

	b.WriteString("\n## Code Smells Summary\n\n")
	if len(r.Smells) > 0 {
		b.WriteString("| Issue | Count | Description |\n|---|---:|---|\n")
		for _, smell := range r.Smells {
			desc := ""
			if rule, ok := catalog.Lookup(smell.Type); ok {
				desc = strings.Join(strings.Fields(rule.Description), " ")
			}
			fmt.Fprintf(&b, "| `%s` | %d | %s |\n", smell.Type, smell.Count, desc)
		}
	} else {
		b.WriteString("No issues found.\n")
	}

	b.WriteString("\n## Code Blocks Requiring Refactoring\n\n")
	if len(r.Refactor) == 0 {
		b.WriteString("No code blocks require urgent refactoring.\n")
	}
	for _, entry := range r.Refactor {
		blk := entry.Block
		fmt.Fprintf(&b, "**%s**\n\n", blk.SectionHeading)
		fmt.Fprintf(&b, "- Full Path: %s\n", blk.Path())
		fmt.Fprintf(&b, "- Lines: %d-%d\n", blk.StartLine, blk.EndLine)
		fmt.Fprintf(&b, "- Language: %s, Size: %d lines\n", blk.Language, blk.LineCount)
		fmt.Fprintf(&b, "- Issues: %d\n", len(entry.Issues))
		for _, issue := range entry.Issues {
			fmt.Fprintf(&b, "  - [%s] `%s`: %s\n", issue.Severity, issue.Type, issue.Message)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHTML renders the markdown report to sanitized HTML
func WriteHTML(w io.Writer, r *Report) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, r); err != nil {
		return err
	}

	// use the Github-flavored Markdown extension for the tables
	renderer := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var body bytes.Buffer
	if err := renderer.Convert(md.Bytes(), &body); err != nil {
		return err
	}

	// headings and paths come from the audited document
	sanitized := bluemonday.UGCPolicy().SanitizeBytes(body.Bytes())

	_, err := w.Write(sanitized)
	return err
}
