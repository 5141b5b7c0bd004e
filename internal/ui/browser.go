package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/blockaudit/internal/report"
)

// ============================================================================
// Block Item
// ============================================================================

// blockItem wraps a report entry with precomputed search text
type blockItem struct {
	entry    report.Entry
	refactor bool
	search   string // lowercased heading path, language and issue types
}

// newBlockItem creates a blockItem from an entry
func newBlockItem(entry report.Entry) blockItem {
	var b strings.Builder
	b.WriteString(strings.ToLower(entry.Block.Path()))
	b.WriteString(" ")
	b.WriteString(strings.ToLower(entry.Block.Language))
	for _, issue := range entry.Issues {
		b.WriteString(" ")
		b.WriteString(string(issue.Type))
		b.WriteString(" ")
		b.WriteString(issue.Severity.String())
	}

	return blockItem{
		entry:    entry,
		refactor: report.NeedsRefactor(entry.Issues),
		search:   b.String(),
	}
}

// matchesQuery checks if the item matches all search words
func (item *blockItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.search, word) {
			return false
		}
	}
	return true
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Browser Model
// ============================================================================

// browserModel lists code blocks and shows the selected block's issues
type browserModel struct {
	width     int
	height    int
	textInput textinput.Model
	detail    viewport.Model
	quitting  bool

	items        []blockItem
	filtered     []blockItem
	cursor       int
	offset       int
	refactorOnly bool
}

func newBrowserModel(entries []report.Entry) browserModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by heading, language or issue..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]blockItem, len(entries))
	for i, entry := range entries {
		items[i] = newBlockItem(entry)
	}

	m := browserModel{
		items:     items,
		filtered:  items,
		textInput: ti,
		detail:    viewport.New(80, 10),
	}
	m.refreshDetail()
	return m
}

// Init implements tea.Model
func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
		m.detail.Width = msg.Width
		m.detail.Height = maxInt(msg.Height/2, 5)
		m.refreshDetail()
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case filterMsg:
		m.filterItems()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes navigation keys; other keys go to the filter input
func (m *browserModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.moveCursor(-len(m.filtered))
	case "end", "ctrl+e":
		m.moveCursor(len(m.filtered))
	case "ctrl+r":
		m.refactorOnly = !m.refactorOnly
		m.filterItems()
	case "ctrl+d":
		m.detail.HalfViewDown()
	case "ctrl+u":
		m.detail.HalfViewUp()
	default:
		return nil, false
	}
	return nil, true
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *browserModel) moveCursor(delta int) {
	prev := m.cursor
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))
	if m.cursor != prev {
		m.refreshDetail()
	}
}

// filterItems filters the list by the query and the refactor toggle
func (m *browserModel) filterItems() {
	words := strings.Fields(strings.ToLower(m.textInput.Value()))

	m.filtered = make([]blockItem, 0, len(m.items))
	for i := range m.items {
		if m.refactorOnly && !m.items[i].refactor {
			continue
		}
		if m.items[i].matchesQuery(words) {
			m.filtered = append(m.filtered, m.items[i])
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.refreshDetail()
}

// selected returns the item under the cursor
func (m browserModel) selected() (blockItem, bool) {
	if m.cursor < len(m.filtered) {
		return m.filtered[m.cursor], true
	}
	return blockItem{}, false
}

// refreshDetail loads the selected block into the detail viewport
func (m *browserModel) refreshDetail() {
	item, ok := m.selected()
	if !ok {
		m.detail.SetContent(styles.Dim.Render("No matching code blocks"))
		return
	}
	m.detail.SetContent(renderDetail(item))
	m.detail.GotoTop()
}

// renderDetail renders one block's issues followed by its content
func renderDetail(item blockItem) string {
	b := item.entry.Block

	var sb strings.Builder
	sb.WriteString(styles.DetailHeader.Render(b.SectionHeading))
	sb.WriteString("\n")
	sb.WriteString(styles.Path.Render(b.Path()))
	sb.WriteString("\n")
	sb.WriteString(styles.Dim.Render(fmt.Sprintf("lines %d-%d, %s, %d lines", b.StartLine, b.EndLine, b.Language, b.LineCount)))
	sb.WriteString("\n\n")

	if len(item.entry.Issues) == 0 {
		sb.WriteString(styles.Dim.Render("No issues"))
		sb.WriteString("\n")
	}
	for _, issue := range item.entry.Issues {
		label := fmt.Sprintf("[%s]", strings.ToUpper(issue.Severity.String()))
		fmt.Fprintf(&sb, "%s %s %s\n", report.SeverityIcon(issue.Severity), styles.Severity(issue.Severity, label), issue.Type)
		fmt.Fprintf(&sb, "   %s\n", issue.Message)
		fmt.Fprintf(&sb, "   %s\n", styles.Dim.Render("Location: "+issue.Location))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Code.Render(b.Content))
	return sb.String()
}

// View implements tea.Model
func (m browserModel) View() string {
	if m.quitting {
		return ""
	}

	width := maxInt(m.width, 80)
	height := maxInt(m.height, 24)

	detail := m.detail.View()
	detailLines := countLines(detail)

	inputLines := 3 // divider + info + input
	listHeight := maxInt(height-detailLines-inputLines-1, 3)
	list := m.renderList(listHeight, width)
	listLines := countLines(list)

	padding := maxInt(height-detailLines-listLines-inputLines-1, 0)

	var b strings.Builder
	b.WriteString(detail)
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.renderInput(width))
	return b.String()
}

// renderList renders the scrollable list of blocks
func (m *browserModel) renderList(maxHeight, width int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &m.offset)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders a single list row
func (m browserModel) renderListItem(item blockItem, selected bool, width int) string {
	b := item.entry.Block

	cursor := "  "
	if selected {
		cursor = styles.Cursor.Render("> ")
	}

	marker := " "
	if item.refactor {
		marker = styles.High.Render("!")
	}

	span := fmt.Sprintf("%5d-%-5d", b.StartLine, b.EndLine)
	count := fmt.Sprintf("%2d issues", len(item.entry.Issues))
	path := truncateString(b.Path(), maxInt(width-lipgloss.Width(span+count)-12, 10))

	row := fmt.Sprintf("%s%s %s %s  %s", cursor, marker, span, styles.Dim.Render(count), styles.Header.Render(path))
	if selected {
		return styles.WithSelection(lipgloss.NewStyle()).Render(row)
	}
	return row
}

// renderInput renders the status line and filter input
func (m browserModel) renderInput(width int) string {
	mode := "all blocks"
	if m.refactorOnly {
		mode = "needs refactor"
	}
	info := fmt.Sprintf("%d/%d  %s  (ctrl+r toggle, ctrl+d/ctrl+u scroll, esc quit)", len(m.filtered), len(m.items), mode)

	var b strings.Builder
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(info))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Entry Point
// ============================================================================

// getTTY returns terminal handles even when stdout is captured
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is not a terminal, use /dev/tty
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Browse launches the interactive report browser
func Browse(entries []report.Entry, refactorOnly bool) error {
	if len(entries) == 0 {
		return fmt.Errorf("no code blocks found")
	}

	m := newBrowserModel(entries)
	if refactorOnly {
		m.refactorOnly = true
		m.filterItems()
	}

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()
	RefreshStyles() // Refresh after getTTY sets up the renderer

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err := p.Run()
	return err
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// countLines counts the number of lines in a string
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// scrollWindow calculates the visible range for a scrollable list
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	maxOffset := max(0, total-height)
	*offset = clamp(*offset, 0, maxOffset)

	start = *offset
	end = min(start+height, total)
	return
}

// truncateString truncates a string to maxLen with ellipsis
func truncateString(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
