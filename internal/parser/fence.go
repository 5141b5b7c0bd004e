package parser

import "strings"

// FenceMarker opens and closes a fenced code sample
const FenceMarker = "```"

// PlainLanguage is used when a fence declares no language
const PlainLanguage = "plain"

// FenceEvent is what the scanner saw on a line
type FenceEvent int

const (
	FenceNone  FenceEvent = iota // Ordinary line outside a block
	FenceOpen                    // Marker that opened a block
	FenceBody                    // Line buffered inside a block
	FenceClose                   // Marker that closed a block
)

// IsFence reports whether line starts with the fence marker at column 0
func IsFence(line string) bool {
	return strings.HasPrefix(line, FenceMarker)
}

// FenceScanner toggles on fence markers and buffers the lines in between
type FenceScanner struct {
	open      bool
	startLine int
	language  string
	lines     []string
}

// Scan feeds line number n (1-based) to the scanner
func (f *FenceScanner) Scan(n int, line string) FenceEvent {
	if IsFence(line) {
		if f.open {
			f.open = false
			return FenceClose
		}
		f.open = true
		f.startLine = n
		f.language = strings.TrimSpace(line[len(FenceMarker):])
		if f.language == "" {
			f.language = PlainLanguage
		}
		f.lines = f.lines[:0]
		return FenceOpen
	}
	if f.open {
		f.lines = append(f.lines, line)
		return FenceBody
	}
	return FenceNone
}

// Open reports whether a block is currently open
func (f *FenceScanner) Open() bool {
	return f.open
}

// StartLine returns the line of the most recent opening marker
func (f *FenceScanner) StartLine() int {
	return f.startLine
}

// Language returns the tag of the most recent opening marker
func (f *FenceScanner) Language() string {
	return f.language
}

// Lines returns a copy of the buffered body lines
func (f *FenceScanner) Lines() []string {
	return append([]string(nil), f.lines...)
}
