package parser

import (
	"testing"

	"github.com/go-test/deep"
)

func TestParseHeading(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		frame HeadingFrame
		ok    bool
	}{
		{name: "h1", line: "# Title", frame: HeadingFrame{Depth: 1, Text: "Title"}, ok: true},
		{name: "h6", line: "###### Deep", frame: HeadingFrame{Depth: 6, Text: "Deep"}, ok: true},
		{name: "trailing spaces trimmed", line: "## Setup   ", frame: HeadingFrame{Depth: 2, Text: "Setup"}, ok: true},
		{name: "tab separator", line: "###\tTabbed", frame: HeadingFrame{Depth: 3, Text: "Tabbed"}, ok: true},
		{name: "seven markers", line: "####### Too deep", ok: false},
		{name: "no space", line: "#hashtag", ok: false},
		{name: "marker only", line: "##   ", ok: false},
		{name: "indented", line: "  # Indented", ok: false},
		{name: "prose", line: "Some text", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, ok := ParseHeading(tt.line)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if diff := deep.Equal(frame, tt.frame); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestHeadingStackUpdate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "empty",
			lines:    []string{"text"},
			expected: nil,
		},
		{
			name:     "nesting",
			lines:    []string{"# A", "## B", "### C"},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "sibling replaces",
			lines:    []string{"# A", "## B", "## C"},
			expected: []string{"A", "C"},
		},
		{
			name:     "shallower pops descendants",
			lines:    []string{"# A", "## B", "#### D", "## E"},
			expected: []string{"A", "E"},
		},
		{
			name:     "skipped levels kept",
			lines:    []string{"## B", "#### D"},
			expected: []string{"B", "D"},
		},
		{
			name:     "new h1 resets",
			lines:    []string{"# A", "## B", "### C", "# Z"},
			expected: []string{"Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s HeadingStack
			for _, line := range tt.lines {
				s.Update(line)
			}
			if diff := deep.Equal(s.Snapshot(), tt.expected); diff != nil {
				t.Error(diff)
			}

			frames := s.Frames()
			for i := 1; i < len(frames); i++ {
				if frames[i].Depth <= frames[i-1].Depth {
					t.Errorf("depths not increasing: %v", frames)
				}
			}
		})
	}
}

func TestHeadingStackSnapshotIsCopy(t *testing.T) {
	var s HeadingStack
	s.Update("# A")
	snap := s.Snapshot()
	s.Update("# B")
	if snap[0] != "A" {
		t.Errorf("snapshot changed after update: %v", snap)
	}
}
