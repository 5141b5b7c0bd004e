package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/blockaudit/internal/analyzer"
	"github.com/gubarz/blockaudit/internal/config"
)

// StyleManager encapsulates all styles used by the text report and the browser
type StyleManager struct {
	// Severity styles
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	// List view styles
	Header   lipgloss.Style
	Path     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style

	// Detail styles
	DetailHeader lipgloss.Style
	Code         lipgloss.Style

	// Chrome styles
	Border  lipgloss.Style
	Divider lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		High:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Medium:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Low:          lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Header:       lipgloss.NewStyle().Bold(true),
		Path:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DetailHeader: lipgloss.NewStyle().Bold(true),
		Code:         lipgloss.NewStyle(),
		Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Divider:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg:   lipgloss.Color("236"),
	}
}

// PlainStyles returns a StyleManager that renders text unchanged
func PlainStyles() *StyleManager {
	plain := lipgloss.NewStyle()
	return &StyleManager{
		High: plain, Medium: plain, Low: plain,
		Header: plain, Path: plain, Selected: plain, Cursor: plain, Dim: plain,
		DetailHeader: plain, Code: plain,
		Border: plain, Divider: plain,
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	highColor := parseANSIColor(config.GetColorHigh())
	mediumColor := parseANSIColor(config.GetColorMedium())
	lowColor := parseANSIColor(config.GetColorLow())
	headerColor := parseANSIColor(config.GetColorHeader())
	dimColor := lipgloss.Color(config.GetColorDim())
	selectedBg := lipgloss.Color(config.GetColorSelected())

	s.High = lipgloss.NewStyle().Bold(true).Foreground(highColor)
	s.Medium = lipgloss.NewStyle().Bold(true).Foreground(mediumColor)
	s.Low = lipgloss.NewStyle().Foreground(lowColor)

	s.Header = lipgloss.NewStyle().Foreground(headerColor)
	s.Selected = lipgloss.NewStyle().Background(selectedBg)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Path = lipgloss.NewStyle().Foreground(dimColor)

	// Detail header is bold in the same colour
	s.DetailHeader = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.SelectedBg = selectedBg
}

// ForSeverity returns the style for sev
func (s *StyleManager) ForSeverity(sev analyzer.Severity) lipgloss.Style {
	switch sev {
	case analyzer.High:
		return s.High
	case analyzer.Medium:
		return s.Medium
	default:
		return s.Low
	}
}

// Severity renders text in the colour of sev
func (s *StyleManager) Severity(sev analyzer.Severity, text string) string {
	return s.ForSeverity(sev).Render(text)
}

// Title renders a heading or banner
func (s *StyleManager) Title(text string) string {
	return s.Header.Render(text)
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	if !config.GetColor() {
		styles = PlainStyles()
		return
	}
	styles = DefaultStyles()
	styles.LoadFromConfig()
}

// Styles returns the global style manager
func Styles() *StyleManager {
	return styles
}
