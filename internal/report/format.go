package report

import (
	"fmt"
	"io"
	"strings"
)

// Format enumerates the output formats for the report
type Format string

const (
	// FormatText is the default layout printed to stdout
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
)

// Formats lists every supported format
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatCSV}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatText, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (supported: %s)", name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// CreateReport writes r to w in the given format. The highlighter only
// applies to the text format.
func CreateReport(w io.Writer, format Format, r *Report, hl Highlighter) error {
	switch format {
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return WriteText(w, r, hl)
	}
}
