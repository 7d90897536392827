// Package output renders aggregated batch results for terminals and
// downloads.
package output

import (
	"fmt"
	"strings"

	"github.com/parcelscope/parcelscope/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
)

// Formatter renders a batch result.
type Formatter interface {
	Format(result *core.BatchResult) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatReport):
		return FormatReport, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format, maxReportRows int) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	case FormatReport:
		return &ReportFormatter{MaxRows: maxReportRows}
	default:
		return &TableFormatter{}
	}
}

// cellString renders a row value for display. JSON numbers arrive as
// float64; integral values print without a decimal point.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
