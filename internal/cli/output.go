package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/teetimes/internal/config"
	"github.com/pfrederiksen/teetimes/internal/teetime"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("unsupported output format %q: use text or json", s)
	}
	return format, nil
}

// OutputResult contains one search's rows
type OutputResult struct {
	SearchedAt time.Time            `json:"searched_at"`
	Date       string               `json:"date"`
	Holes      []teetime.HoleFilter `json:"holes"`
	Count      int                  `json:"count"`
	TeeTimes   []teetime.DisplayRow `json:"tee_times"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeTable(w, teetime.Columns, rowCells(result.TeeTimes))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteCourses writes a course list, as a table or as courses-file JSON
func WriteCourses(w io.Writer, courses []config.Course, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, courses)
	case FormatText:
		cells := make([][]string, len(courses))
		for i, c := range courses {
			cells[i] = []string{c.ID, c.Name}
		}
		return writeTable(w, []string{"ID", "Name"}, cells)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON emits v as one indented JSON document; tee-time fields are
// written unescaped so course names keep their ampersands
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func rowCells(rows []teetime.DisplayRow) [][]string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells()
	}
	return cells
}

// writeTable prints aligned columns with a dashed rule under the header
func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
