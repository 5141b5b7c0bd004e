package parser

import (
	"os"
	"strings"
)

// NoHeading is used for blocks that appear before any heading
const NoHeading = "No heading"

// PathSeparator joins heading texts for display
const PathSeparator = " > "

// CodeBlock is one fenced code sample and the section that contains it
type CodeBlock struct {
	StartLine      int      `json:"start_line" yaml:"start_line"`           // Line of the opening fence (1-based)
	EndLine        int      `json:"end_line" yaml:"end_line"`               // Line of the closing fence (1-based)
	Language       string   `json:"language" yaml:"language"`               // Tag after the opening fence, or "plain"
	Content        string   `json:"content" yaml:"content"`                 // Lines strictly between the fences
	LineCount      int      `json:"line_count" yaml:"line_count"`           // Number of content lines
	HeadingPath    []string `json:"heading_path" yaml:"heading_path"`       // Heading texts active when the fence opened
	SectionHeading string   `json:"section_heading" yaml:"section_heading"` // Innermost heading, or NoHeading
}

// Path returns the heading path joined for display
func (b CodeBlock) Path() string {
	if len(b.HeadingPath) == 0 {
		return NoHeading
	}
	return strings.Join(b.HeadingPath, PathSeparator)
}

// Lines splits the content back into lines
func (b CodeBlock) Lines() []string {
	return strings.Split(b.Content, "\n")
}

// Extractor composes a HeadingStack and a FenceScanner. It sees each line
// exactly once and never reads ahead.
type Extractor struct {
	headings HeadingStack
	fence    FenceScanner
	snapshot []string
	line     int
	blocks   []CodeBlock
}

// NewExtractor creates an extractor with empty state
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Feed processes the next document line. It returns the completed block
// when the line closes a fence.
func (e *Extractor) Feed(line string) (CodeBlock, bool) {
	e.line++

	// Fence toggle first; headings are only tracked outside blocks
	switch e.fence.Scan(e.line, line) {
	case FenceOpen:
		e.snapshot = e.headings.Snapshot()
		return CodeBlock{}, false
	case FenceClose:
		block := e.finish()
		e.blocks = append(e.blocks, block)
		return block, true
	case FenceBody:
		return CodeBlock{}, false
	}

	e.headings.Update(line)
	return CodeBlock{}, false
}

func (e *Extractor) finish() CodeBlock {
	lines := e.fence.Lines()
	section := NoHeading
	if len(e.snapshot) > 0 {
		section = e.snapshot[len(e.snapshot)-1]
	}
	block := CodeBlock{
		StartLine:      e.fence.StartLine(),
		EndLine:        e.line,
		Language:       e.fence.Language(),
		Content:        strings.Join(lines, "\n"),
		LineCount:      len(lines),
		HeadingPath:    e.snapshot,
		SectionHeading: section,
	}
	e.snapshot = nil
	return block
}

// Blocks returns every block completed so far. A fence still open is not
// included; its content is dropped if the input ends there.
func (e *Extractor) Blocks() []CodeBlock {
	return e.blocks
}

// Pending reports whether the last fence seen is still open
func (e *Extractor) Pending() bool {
	return e.fence.Open()
}

// ExtractLines runs a fresh extractor over lines
func ExtractLines(lines []string) []CodeBlock {
	e := NewExtractor()
	for _, line := range lines {
		e.Feed(line)
	}
	return e.Blocks()
}

// Extract runs a fresh extractor over a whole document
func Extract(text string) []CodeBlock {
	return ExtractLines(SplitLines(text))
}

// ExtractFile reads path in full and extracts its blocks. Read errors are
// returned unchanged.
func ExtractFile(path string) ([]CodeBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(string(data)), nil
}

// SplitLines splits text on newlines, dropping a trailing \r from each line
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
