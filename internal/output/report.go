package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/parcelscope/parcelscope/internal/core"
)

// DefaultMaxReportRows bounds the formatted report's size.
const DefaultMaxReportRows = 500

// reportColumns is the fixed reduced subset for the human-oriented report.
var reportColumns = []string{
	core.ColInputAddress,
	core.ColLocation,
	core.ColYear,
	core.ColMarketValue,
	core.ColTaxableLand,
	core.ColTaxableBuilding,
}

// monetaryColumns are rendered with thousands separators and no decimals.
var monetaryColumns = map[string]bool{
	core.ColMarketValue:     true,
	core.ColTaxableLand:     true,
	core.ColTaxableBuilding: true,
	core.ColExemptLand:      true,
	core.ColExemptBuilding:  true,
}

// ReportFormatter renders the formatted, human-oriented report: a reduced
// column set when the value columns are present, a grand total of market
// values, and a bounded row count.
type ReportFormatter struct {
	MaxRows int
}

// Format renders the report.
func (f *ReportFormatter) Format(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	columns := f.selectColumns(result.Columns)

	var b strings.Builder
	b.WriteString(f.totalLine(result))
	b.WriteString("\n\n")

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(columns))
	for _, col := range columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	maxRows := f.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxReportRows
	}

	shown := 0
	for _, row := range result.Rows {
		if shown >= maxRows {
			break
		}
		cells := make(table.Row, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, reportCell(col, row[col]))
		}
		t.AppendRow(cells)
		shown++
	}

	b.WriteString(t.Render())

	if len(result.Rows) > shown {
		fmt.Fprintf(&b, "\n\nShowing first %d of %d rows.", shown, len(result.Rows))
	}

	if len(result.Errors) > 0 {
		b.WriteString("\n\nErrors:\n")
		for _, msg := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// selectColumns keeps the fixed reduced subset when the table carries any
// of its value columns; otherwise the report falls back to every column.
func (f *ReportFormatter) selectColumns(all []string) []string {
	present := make(map[string]bool, len(all))
	for _, col := range all {
		present[col] = true
	}

	hasValues := present[core.ColMarketValue] || present[core.ColTaxableLand] || present[core.ColTaxableBuilding]
	if !hasValues {
		return all
	}

	reduced := make([]string, 0, len(reportColumns))
	for _, col := range reportColumns {
		if present[col] {
			reduced = append(reduced, col)
		}
	}
	return reduced
}

// totalLine computes the grand total of the market-value column. Null and
// non-numeric values are excluded from the sum, not counted as zero; a
// table without a usable market-value column states that the total could
// not be computed.
func (f *ReportFormatter) totalLine(result *core.BatchResult) string {
	hasColumn := false
	for _, col := range result.Columns {
		if col == core.ColMarketValue {
			hasColumn = true
			break
		}
	}
	if !hasColumn {
		return "Market value total: unavailable (no market_value column)"
	}

	total := int64(0)
	counted := 0
	for _, row := range result.Rows {
		value, ok := numericValue(row[core.ColMarketValue])
		if !ok {
			continue
		}
		total += value
		counted++
	}

	if counted == 0 {
		return "Market value total: unavailable (no numeric market values)"
	}
	return fmt.Sprintf("Market value total: %s (across %d rows)", groupThousands(total), counted)
}

func reportCell(column string, value any) string {
	if monetaryColumns[column] {
		if n, ok := numericValue(value); ok {
			return groupThousands(n)
		}
	}
	return cellString(value)
}

// numericValue extracts an integral amount from a row value. Monetary
// fields arrive as JSON numbers, but some reporting periods ship them as
// digit strings.
func numericValue(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// groupThousands formats n with comma separators.
func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
