package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/parcelscope/parcelscope/internal/core"
)

// TableFormatter renders results as an ASCII table for terminal display.
type TableFormatter struct{}

// Format renders the full aggregated table plus any per-address errors.
func (f *TableFormatter) Format(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(result.Columns))
	for _, col := range result.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		cells := make(table.Row, 0, len(result.Columns))
		for _, col := range result.Columns {
			cells = append(cells, cellString(row[col]))
		}
		t.AppendRow(cells)
	}

	rendered := t.Render()

	if len(result.Errors) > 0 {
		var b strings.Builder
		b.WriteString(rendered)
		b.WriteString("\n\nErrors:\n")
		for _, msg := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
		rendered = strings.TrimRight(b.String(), "\n")
	}

	return rendered, nil
}
