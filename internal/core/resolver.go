package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/parcelscope/parcelscope/internal/carto"
	"github.com/parcelscope/parcelscope/internal/metrics"
)

// DefaultPropertiesTable is the registry table holding one record per
// parcel.
const DefaultPropertiesTable = "opa_properties_public"

// Resolver finds the best-matching parcel for a normalized address
// pattern.
type Resolver struct {
	Client *carto.Client
	Table  string
}

// Resolve returns the first parcel whose address matches the pattern,
// ordering by parcel number so overlapping matches (unit subdivisions
// sharing street text) break ties deterministically. A nil parcel with a
// nil error means no match. An empty pattern resolves to no match without
// issuing a query.
func (r *Resolver) Resolve(ctx context.Context, pattern string) (*Parcel, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("resolver is not configured")
	}
	if pattern == "" {
		return nil, nil
	}

	stmt := carto.Select(ColParcelNumber, ColLocation, ColZipCode).
		From(r.table()).
		WhereLike(ColLocation, pattern).
		OrderBy(ColParcelNumber).
		Limit(1)

	rows, err := r.Client.Execute(ctx, stmt)
	metrics.RecordRegistryQuery(r.table(), err == nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &Parcel{
		Number:   stringField(row, ColParcelNumber),
		Location: stringField(row, ColLocation),
		ZipCode:  stringField(row, ColZipCode),
	}, nil
}

func (r *Resolver) table() string {
	if r.Table != "" {
		return r.Table
	}
	return DefaultPropertiesTable
}

// stringField coerces a row value to its display string. Numeric postal
// codes arrive as JSON numbers from some reporting periods.
func stringField(row carto.Row, key string) string {
	switch v := row[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
