package parser

import (
	"regexp"
	"strings"
)

var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// HeadingFrame is one active heading level
type HeadingFrame struct {
	Depth int    // Number of # markers
	Text  string // Heading text, trimmed
}

// HeadingStack tracks the nested section path while scanning a document.
// Frame depths are strictly increasing from bottom to top.
type HeadingStack struct {
	frames []HeadingFrame
}

// ParseHeading reports whether line is a heading and returns its frame
func ParseHeading(line string) (HeadingFrame, bool) {
	matches := headerRegex.FindStringSubmatch(line)
	if matches == nil {
		return HeadingFrame{}, false
	}
	text := strings.TrimSpace(matches[2])
	if text == "" {
		return HeadingFrame{}, false
	}
	return HeadingFrame{Depth: len(matches[1]), Text: text}, true
}

// Update feeds one line to the stack. Non-heading lines leave it untouched.
// Returns true if the line was a heading.
func (s *HeadingStack) Update(line string) bool {
	frame, ok := ParseHeading(line)
	if !ok {
		return false
	}
	s.Push(frame)
	return true
}

// Push pops every frame at the same or a deeper level, then pushes frame
func (s *HeadingStack) Push(frame HeadingFrame) {
	for len(s.frames) > 0 && s.frames[len(s.frames)-1].Depth >= frame.Depth {
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, frame)
}

// Frames returns a copy of the current frames, outermost first
func (s *HeadingStack) Frames() []HeadingFrame {
	return append([]HeadingFrame(nil), s.frames...)
}

// Snapshot returns the heading texts, outermost first
func (s *HeadingStack) Snapshot() []string {
	if len(s.frames) == 0 {
		return nil
	}
	texts := make([]string, len(s.frames))
	for i, f := range s.frames {
		texts[i] = f.Text
	}
	return texts
}

// Depth returns the number of active frames
func (s *HeadingStack) Depth() int {
	return len(s.frames)
}
