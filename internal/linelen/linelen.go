// Package linelen flags over-long lines inside fenced code blocks. It does
// not attribute lines to sections; it only toggles on fence markers.
package linelen

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gubarz/blockaudit/internal/parser"
)

// DefaultLimit is the longest line allowed inside a code block
const DefaultLimit = 75

const (
	displayMax  = 100
	displayKeep = 97
)

// Violation is one line over the limit
type Violation struct {
	Line    int    `json:"line"`
	Length  int    `json:"length"`
	Content string `json:"content"`
}

// Result is the outcome of checking one document
type Result struct {
	Path       string
	Limit      int
	Violations []Violation
}

// CheckLines scans lines and returns those inside fences longer than limit.
// Length counts runes, without the line terminator.
func CheckLines(lines []string, limit int) []Violation {
	var violations []Violation
	inBlock := false

	for i, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(strings.TrimSpace(line), parser.FenceMarker) {
			inBlock = !inBlock
			continue
		}
		if !inBlock {
			continue
		}
		if n := utf8.RuneCountInString(line); n > limit {
			violations = append(violations, Violation{Line: i + 1, Length: n, Content: line})
		}
	}
	return violations
}

// Check reads path and checks it
func Check(path string, limit int) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	return &Result{
		Path:       path,
		Limit:      limit,
		Violations: CheckLines(lines, limit),
	}, nil
}

// Run checks path and writes the report to w. A read failure is reported
// to w and ends the run without scanning.
func Run(w io.Writer, path string, limit int) error {
	result, err := Check(path, limit)
	if err != nil {
		_, werr := fmt.Fprintf(w, "Error reading %s: %v\n", path, err)
		return werr
	}
	return WriteReport(w, result)
}

// WriteReport writes the violations found in result
func WriteReport(w io.Writer, result *Result) error {
	var b strings.Builder
	if len(result.Violations) == 0 {
		fmt.Fprintf(&b, "No line length violations found in %s (limit: %d)\n", result.Path, result.Limit)
	} else {
		fmt.Fprintf(&b, "File: %s\n", result.Path)
		fmt.Fprintf(&b, "Found %d lines exceeding %d characters in code blocks:\n", len(result.Violations), result.Limit)
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, v := range result.Violations {
			fmt.Fprintf(&b, "Line %d (%d chars): %s\n", v.Line, v.Length, Truncate(v.Content))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Truncate shortens content longer than 100 runes for display
func Truncate(content string) string {
	if utf8.RuneCountInString(content) <= displayMax {
		return content
	}
	runes := []rune(content)
	return string(runes[:displayKeep]) + "..."
}
