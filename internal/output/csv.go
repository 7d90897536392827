package output

import (
	"encoding/csv"
	"strings"

	"github.com/parcelscope/parcelscope/internal/core"
)

// CSVFormatter is the raw export: every column of the aggregated table,
// values unmodified, with encoding/csv quoting.
type CSVFormatter struct{}

// Format renders a batch result as delimited text.
func (f *CSVFormatter) Format(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(result.Columns); err != nil {
		return "", err
	}

	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			record[i] = cellString(row[col])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
