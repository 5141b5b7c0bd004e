package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes the report in json format
func WriteJSON(w io.Writer, r *Report) error {
	raw, err := json.MarshalIndent(r, "", "\t")
	if err != nil {
		return err
	}

	_, err = w.Write(append(raw, '\n'))
	return err
}

// WriteYAML writes the report in yaml format
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

var csvHeader = []string{
	"section", "heading_path", "start_line", "end_line", "language",
	"type", "severity", "message", "location", "needs_refactor",
}

// WriteCSV writes one row per issue
func WriteCSV(w io.Writer, r *Report) error {
	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return err
	}

	for _, section := range r.Sections {
		for _, entry := range section.Entries {
			b := entry.Block
			refactor := strconv.FormatBool(NeedsRefactor(entry.Issues))
			for _, issue := range entry.Issues {
				err := out.Write([]string{
					section.Heading,
					b.Path(),
					strconv.Itoa(b.StartLine),
					strconv.Itoa(b.EndLine),
					b.Language,
					string(issue.Type),
					issue.Severity.String(),
					issue.Message,
					issue.Location,
					refactor,
				})
				if err != nil {
					return err
				}
			}
		}
	}

	out.Flush()
	return out.Error()
}
