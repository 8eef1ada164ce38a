// Package render turns a structured comparison report into
// human-readable or machine-readable output. The comparison core
// knows nothing about presentation; everything here can be swapped
// out without touching it.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"
	"github.com/olekukonko/tablewriter"

	"jsoncompare/internal/errors"
	"jsoncompare/internal/models"
)

// TableRenderer renders a report as a grid table with a summary
// block, optionally colorized by outcome.
type TableRenderer struct {
	LabelA string
	LabelB string
	// Color toggles ANSI coloring of status cells and headings.
	Color bool
	// ShowMatching and ShowDifferent toggle the trailing field-list
	// sections.
	ShowMatching  bool
	ShowDifferent bool
}

// NewTableRenderer returns a TableRenderer with the default labels
// and all sections enabled.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{
		LabelA:        "REQUEST",
		LabelB:        "RESPONSE",
		Color:         true,
		ShowMatching:  true,
		ShowDifferent: true,
	}
}

// Render writes the full comparison report to w.
func (r *TableRenderer) Render(w io.Writer, report *models.Report) error {
	var b strings.Builder

	heading := fmt.Sprintf("JSON %s vs %s COMPARISON REPORT", r.LabelA, r.LabelB)
	b.WriteString(r.paint(heading, color.FgCyan, color.Bold))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n\n")

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Field Path", r.LabelA + " Value", r.LabelB + " Value", "Status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, row := range report.Rows {
		table.Append([]string{
			row.Identity,
			row.DisplayA,
			row.DisplayB,
			r.statusCell(row.Outcome),
		})
	}
	table.Render()

	r.writeSummary(&b, report.Summary)

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return errors.NewOutputError("failed to write report", err)
	}
	return nil
}

func (r *TableRenderer) writeSummary(b *strings.Builder, s models.Summary) {
	b.WriteByte('\n')
	b.WriteString(r.paint("SUMMARY:", color.FgCyan, color.Bold))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", 60))
	b.WriteByte('\n')
	fmt.Fprintf(b, "Total Fields Compared: %d\n", s.TotalFields)
	fmt.Fprintf(b, "Matching Fields: %d (%s)\n", s.Matches, percentage(s.Matches, s.TotalFields))
	fmt.Fprintf(b, "Different/Missing Fields: %d (%s)\n", s.Differences, percentage(s.Differences, s.TotalFields))

	if r.ShowDifferent && len(s.DifferentFields) > 0 {
		b.WriteByte('\n')
		b.WriteString(r.paint("FIELDS WITH DIFFERENCES:", color.FgYellow))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", 30))
		b.WriteByte('\n')
		for _, field := range s.DifferentFields {
			fmt.Fprintf(b, "- %s\n", field)
		}
	}

	if r.ShowMatching && len(s.MatchingFields) > 0 {
		b.WriteByte('\n')
		b.WriteString(r.paint("MATCHING FIELDS:", color.FgGreen))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", 20))
		b.WriteByte('\n')
		for _, field := range s.MatchingFields {
			fmt.Fprintf(b, "- %s\n", field)
		}
	}
}

// StatusText maps an outcome to its report label. Missing outcomes
// name the side the field is absent from.
func (r *TableRenderer) StatusText(o models.Outcome) string {
	switch o {
	case models.Match:
		return "MATCH"
	case models.DifferentValues:
		return "DIFFERENT VALUES"
	case models.MissingInA:
		return "MISSING IN " + r.LabelA
	case models.MissingInB:
		return "MISSING IN " + r.LabelB
	default:
		return o.String()
	}
}

// statusCell renders the status label in the outcome's color:
// green for a match, yellow for a value difference, red for a field
// missing on either side.
func (r *TableRenderer) statusCell(o models.Outcome) string {
	text := r.StatusText(o)
	switch o {
	case models.Match:
		return r.paint(text, color.FgGreen)
	case models.DifferentValues:
		return r.paint(text, color.FgYellow)
	case models.MissingInA, models.MissingInB:
		return r.paint(text, color.FgRed)
	default:
		return text
	}
}

func (r *TableRenderer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if !r.Color {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(s)
}

func percentage(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// JSONRenderer renders a report as machine-readable JSON so other
// tooling can consume the comparison without scraping the table.
type JSONRenderer struct {
	// Indent enables pretty-printing.
	Indent bool
}

type jsonRow struct {
	Field  string   `json:"field"`
	ValueA string   `json:"value_a"`
	ValueB string   `json:"value_b"`
	PathsA []string `json:"paths_a,omitempty"`
	PathsB []string `json:"paths_b,omitempty"`
	Status string   `json:"status"`
}

type jsonSummary struct {
	TotalFields     int      `json:"total_fields"`
	Matches         int      `json:"matches"`
	Differences     int      `json:"differences"`
	MatchingFields  []string `json:"matching_fields"`
	DifferentFields []string `json:"different_fields"`
}

type jsonReport struct {
	Rows    []jsonRow   `json:"rows"`
	Summary jsonSummary `json:"summary"`
}

// Render writes the report as JSON to w. Outcome names are
// serialized in snake_case ("different_values", "missing_in_a") to
// match the rest of the schema.
func (r *JSONRenderer) Render(w io.Writer, report *models.Report) error {
	out := jsonReport{
		Rows: make([]jsonRow, 0, len(report.Rows)),
		Summary: jsonSummary{
			TotalFields:     report.Summary.TotalFields,
			Matches:         report.Summary.Matches,
			Differences:     report.Summary.Differences,
			MatchingFields:  report.Summary.MatchingFields,
			DifferentFields: report.Summary.DifferentFields,
		},
	}
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, jsonRow{
			Field:  row.Identity,
			ValueA: row.DisplayA,
			ValueB: row.DisplayB,
			PathsA: row.PathsA,
			PathsB: row.PathsB,
			Status: strcase.ToSnake(row.Outcome.String()),
		})
	}

	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return errors.NewOutputError("failed to encode report", err)
	}
	return nil
}

// ParseErrorReport renders the diagnostic block for a malformed
// document: the failing position, the offending line in a numbered
// gutter, and a caret pointing at the failure column.
func ParseErrorReport(perr *errors.ParseError, useColor bool) string {
	paint := func(s string, attrs ...color.Attribute) string {
		c := color.New(attrs...)
		if !useColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.Sprint(s)
	}

	var b strings.Builder
	b.WriteString(paint(perr.Label+" PARSING ERROR:", color.FgRed, color.Bold))
	b.WriteByte('\n')
	b.WriteString(paint(fmt.Sprintf("Line %d, Column %d:", perr.Line, perr.Column), color.FgYellow))
	b.WriteByte(' ')
	b.WriteString(perr.Message)
	b.WriteString("\n\n")
	b.WriteString(paint("Error Location:", color.FgCyan))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%3d | %s\n", perr.Line, perr.LineText)
	fmt.Fprintf(&b, "    | %s\n", paint(perr.Pointer, color.FgRed))
	return b.String()
}
