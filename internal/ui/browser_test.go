package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/blockaudit/internal/analyzer"
	"github.com/gubarz/blockaudit/internal/parser"
	"github.com/gubarz/blockaudit/internal/report"
)

func testEntries() []report.Entry {
	return []report.Entry{
		{
			Block: parser.CodeBlock{
				StartLine: 3, EndLine: 9, Language: "python", LineCount: 5,
				HeadingPath: []string{"Guide", "Setup"}, SectionHeading: "Setup",
				Content: "import os",
			},
			Issues: []analyzer.Issue{
				{Type: analyzer.MissingImport, Severity: analyzer.Medium, Message: "uses statistics", Location: "block"},
			},
		},
		{
			Block: parser.CodeBlock{
				StartLine: 20, EndLine: 140, Language: "python", LineCount: 119,
				HeadingPath: []string{"Guide", "Alerts"}, SectionHeading: "Alerts",
				Content: "def burn():\n    pass",
			},
			Issues: []analyzer.Issue{
				{Type: analyzer.LongCodeBlock, Severity: analyzer.Medium, Message: "too long", Location: "lines 20-140"},
			},
		},
		{
			Block: parser.CodeBlock{
				StartLine: 150, EndLine: 153, Language: "bash", LineCount: 2,
				HeadingPath: []string{"Guide", "Deploy"}, SectionHeading: "Deploy",
				Content: "make deploy",
			},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m browserModel, msg tea.Msg) browserModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(browserModel)
	require.True(t, ok)
	return bm
}

func TestBlockItemMatchesQuery(t *testing.T) {
	item := newBlockItem(testEntries()[1])

	tests := []struct {
		query    []string
		expected bool
	}{
		{nil, true},
		{[]string{"alerts"}, true},
		{[]string{"guide", "long_code_block"}, true},
		{[]string{"medium"}, true},
		{[]string{"deploy"}, false},
		{[]string{"alerts", "missing_import"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, item.matchesQuery(tt.query), "query %v", tt.query)
	}
	assert.True(t, item.refactor)
	assert.False(t, newBlockItem(testEntries()[0]).refactor)
}

func TestBrowserCursorClamps(t *testing.T) {
	m := newBrowserModel(testEntries())

	m = update(t, m, key("up"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, key("down"))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, key("end"))
	assert.Equal(t, 2, m.cursor)

	m = update(t, m, key("down"))
	assert.Equal(t, 2, m.cursor)
}

func TestBrowserRefactorToggle(t *testing.T) {
	m := newBrowserModel(testEntries())
	require.Len(t, m.filtered, 3)

	m = update(t, m, key("ctrl+r"))
	assert.True(t, m.refactorOnly)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Alerts", m.filtered[0].entry.Block.SectionHeading)

	m = update(t, m, key("ctrl+r"))
	assert.Len(t, m.filtered, 3)
}

func TestBrowserFilter(t *testing.T) {
	m := newBrowserModel(testEntries())
	m.textInput.SetValue("deploy")
	m = update(t, m, filterMsg{})

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "bash", m.filtered[0].entry.Block.Language)
	assert.Equal(t, 0, m.cursor)

	m.textInput.SetValue("nothing-matches")
	m = update(t, m, filterMsg{})
	assert.Empty(t, m.filtered)
	_, ok := m.selected()
	assert.False(t, ok)
}

func TestBrowserQuit(t *testing.T) {
	m := newBrowserModel(testEntries())
	next, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.True(t, next.(browserModel).quitting)
	assert.Empty(t, next.(browserModel).View())
}

func TestRenderDetail(t *testing.T) {
	old := styles
	styles = PlainStyles()
	defer func() { styles = old }()

	out := renderDetail(newBlockItem(testEntries()[0]))
	assert.Contains(t, out, "Guide > Setup")
	assert.Contains(t, out, "lines 3-9, python, 5 lines")
	assert.Contains(t, out, "[MEDIUM] missing_import")
	assert.Contains(t, out, "Location: block")
	assert.Contains(t, out, "import os")

	out = renderDetail(newBlockItem(testEntries()[2]))
	assert.Contains(t, out, "No issues")
}

func TestScrollWindow(t *testing.T) {
	offset := 0
	start, end := scrollWindow(0, 20, 5, &offset)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = scrollWindow(7, 20, 5, &offset)
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, end)

	start, end = scrollWindow(19, 20, 5, &offset)
	assert.Equal(t, 15, start)
	assert.Equal(t, 20, end)

	start, end = scrollWindow(2, 3, 5, &offset)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 0, clamp(-3, 0, 4))
	assert.Equal(t, 4, clamp(9, 0, 4))
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 3, countLines("a\nb\nc"))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "short", truncateString("short", 10))
}

func TestStylesHighlighter(t *testing.T) {
	var hl report.Highlighter = PlainStyles()
	assert.Equal(t, "[HIGH]", hl.Severity(analyzer.High, "[HIGH]"))
	assert.Equal(t, "Title", hl.Title("Title"))
}

func TestParseANSIColor(t *testing.T) {
	assert.Equal(t, "1", string(parseANSIColor("31")))
	assert.Equal(t, "14", string(parseANSIColor("96")))
	assert.Equal(t, "241", string(parseANSIColor("241")))
}
