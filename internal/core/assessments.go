package core

import (
	"context"
	"errors"

	"github.com/parcelscope/parcelscope/internal/carto"
	"github.com/parcelscope/parcelscope/internal/metrics"
)

// DefaultAssessmentsTable is the registry table holding one valuation
// record per parcel per tax year.
const DefaultAssessmentsTable = "assessments"

// Fetcher retrieves assessment history for a resolved parcel.
type Fetcher struct {
	Client *carto.Client
	Table  string
}

// Fetch returns the assessment rows for the parcel across the requested
// years, ordered by year ascending. The projection is deliberately open:
// value-column names are not stable across reporting periods, so every
// available column is selected and passed through verbatim. An empty
// parcel number fetches nothing without querying.
func (f *Fetcher) Fetch(ctx context.Context, parcelNumber string, years []int) ([]carto.Row, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("fetcher is not configured")
	}
	if parcelNumber == "" {
		return []carto.Row{}, nil
	}

	stmt := carto.Select().
		From(f.table()).
		WhereEqual(ColParcelNumber, parcelNumber).
		WhereYearIn(ColYear, years).
		OrderBy(ColYear)

	rows, err := f.Client.Execute(ctx, stmt)
	metrics.RecordRegistryQuery(f.table(), err == nil)
	return rows, err
}

func (f *Fetcher) table() string {
	if f.Table != "" {
		return f.Table
	}
	return DefaultAssessmentsTable
}
