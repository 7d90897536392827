package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parcelscope/parcelscope/internal/core"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("CSV")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("markdown")
	require.Error(t, err)
}

func sampleResult() *core.BatchResult {
	return &core.BatchResult{
		Columns: []string{
			core.ColInputAddress, core.ColParcelNumber, core.ColLocation,
			core.ColZipCode, core.ColYear, core.ColMarketValue,
			core.ColTaxableLand, core.ColTaxableBuilding, core.ColNote,
		},
		Rows: []core.ResultRow{
			{
				core.ColInputAddress: "780 Union Street",
				core.ColParcelNumber: "303045200",
				core.ColLocation:     "780 UNION ST",
				core.ColZipCode:      "19104",
				core.ColYear:         float64(2025),
				core.ColMarketValue:  float64(100000),
				core.ColTaxableLand:  float64(20000),
			},
			{
				core.ColInputAddress: "12 Market Street",
				core.ColParcelNumber: "881100100",
				core.ColLocation:     "12 MARKET ST",
				core.ColZipCode:      "19107",
				core.ColYear:         float64(2025),
				core.ColMarketValue:  float64(250000),
				core.ColTaxableLand:  float64(90000),
			},
			{
				core.ColInputAddress: "123 Nowhere St",
				core.ColNote:         "no parcel found",
			},
		},
		Errors: []string{"123 Nowhere St: no parcel found"},
	}
}

func TestCSVFormatter(t *testing.T) {
	rendered, err := (&CSVFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "input_address,parcel_number,location,zip_code,year,market_value,taxable_land,taxable_building,note", lines[0])
	require.Equal(t, "780 Union Street,303045200,780 UNION ST,19104,2025,100000,20000,,", lines[1])
	require.Equal(t, "123 Nowhere St,,,,,,,,no parcel found", lines[3])
}

func TestCSVFormatterQuoting(t *testing.T) {
	result := &core.BatchResult{
		Columns: []string{core.ColInputAddress, core.ColNote},
		Rows: []core.ResultRow{
			{core.ColInputAddress: `780 Union Street, Philadelphia`, core.ColNote: `said "no"`},
		},
	}
	rendered, err := (&CSVFormatter{}).Format(result)
	require.NoError(t, err)
	require.Contains(t, rendered, `"780 Union Street, Philadelphia"`)
	require.Contains(t, rendered, `"said ""no"""`)
}

func TestReportGrandTotalExcludesNulls(t *testing.T) {
	result := sampleResult()
	result.Rows[2][core.ColMarketValue] = nil

	rendered, err := (&ReportFormatter{}).Format(result)
	require.NoError(t, err)
	require.Contains(t, rendered, "Market value total: 350,000 (across 2 rows)")
}

func TestReportTotalUnavailable(t *testing.T) {
	result := &core.BatchResult{
		Columns: []string{core.ColInputAddress, core.ColNote},
		Rows:    []core.ResultRow{{core.ColInputAddress: "123 Nowhere St", core.ColNote: "no parcel found"}},
	}

	rendered, err := (&ReportFormatter{}).Format(result)
	require.NoError(t, err)
	require.Contains(t, rendered, "Market value total: unavailable")
	// No value columns: the report falls back to every column.
	require.Contains(t, rendered, "NOTE")
}

func TestReportReducedColumns(t *testing.T) {
	rendered, err := (&ReportFormatter{}).Format(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "INPUT_ADDRESS")
	require.Contains(t, rendered, "MARKET_VALUE")
	require.NotContains(t, rendered, "ZIP_CODE")
	require.NotContains(t, rendered, "PARCEL_NUMBER")
}

func TestReportTruncation(t *testing.T) {
	result := sampleResult()
	formatter := &ReportFormatter{MaxRows: 1}

	rendered, err := formatter.Format(result)
	require.NoError(t, err)
	require.Contains(t, rendered, "Showing first 1 of 3 rows.")
	require.NotContains(t, rendered, "12 Market Street")
}

func TestReportThousandsSeparators(t *testing.T) {
	rendered, err := (&ReportFormatter{}).Format(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "250,000")
	require.Contains(t, rendered, "90,000")
}

func TestTableFormatterIncludesErrors(t *testing.T) {
	rendered, err := (&TableFormatter{}).Format(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "780 UNION ST")
	require.Contains(t, rendered, "Errors:")
	require.Contains(t, rendered, "123 Nowhere St: no parcel found")
}

func TestGroupThousands(t *testing.T) {
	require.Equal(t, "0", groupThousands(0))
	require.Equal(t, "999", groupThousands(999))
	require.Equal(t, "1,000", groupThousands(1000))
	require.Equal(t, "1,234,567", groupThousands(1234567))
	require.Equal(t, "-45,000", groupThousands(-45000))
}
