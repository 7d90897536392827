package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parcelscope/parcelscope/internal/address"
	"github.com/parcelscope/parcelscope/internal/carto"
)

// Diagnostic notes for the defined empty results.
const (
	noteNoParcel      = "no parcel found"
	noteNoAssessments = "no assessment data for requested years"
)

// Aggregator orchestrates the full pipeline across a batch of addresses:
// normalize, resolve, fetch, merge. Addresses are processed sequentially
// in deduplicated input order; each address is failure-isolated, so one
// bad lookup never aborts the run.
type Aggregator struct {
	Resolver *Resolver
	Fetcher  *Fetcher

	// Progress, when set, is called after each address completes with the
	// number done and the batch total. Observability only; no correctness
	// contract.
	Progress func(done, total int)

	Clock func() time.Time
}

// Run processes the batch and returns one aggregated table plus the
// per-address error list. Malformed batch input (no addresses after
// trimming, or an empty year set) short-circuits with a single batch-level
// error before any query is issued.
func (a *Aggregator) Run(ctx context.Context, addresses []string, years []int) *BatchResult {
	result := &BatchResult{
		RunID:     uuid.New().String(),
		StartedAt: a.now(),
	}

	unique := dedupeAddresses(addresses)
	if len(unique) == 0 {
		result.Errors = append(result.Errors, "no addresses provided")
		result.CompletedAt = a.now()
		return result
	}
	if len(years) == 0 {
		result.Errors = append(result.Errors, "no years selected")
		result.CompletedAt = a.now()
		return result
	}

	for i, addr := range unique {
		rows, err := a.processAddress(ctx, addr, years)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", addr, err.Error()))
			rows = []ResultRow{{ColInputAddress: addr, ColNote: err.Error()}}
		}
		result.Rows = append(result.Rows, rows...)

		if a.Progress != nil {
			a.Progress(i+1, len(unique))
		}
	}

	result.Columns = orderColumns(result.Rows)
	result.CompletedAt = a.now()
	return result
}

// processAddress runs the per-address sequence and always yields at least
// one row on success paths; errors are returned for the caller to downgrade
// at the address boundary.
func (a *Aggregator) processAddress(ctx context.Context, addr string, years []int) ([]ResultRow, error) {
	pattern := address.Normalize(addr)

	parcel, err := a.Resolver.Resolve(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return []ResultRow{{ColInputAddress: addr, ColNote: noteNoParcel}}, nil
	}

	assessments, err := a.Fetcher.Fetch(ctx, parcel.Number, years)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return []ResultRow{{
			ColInputAddress: addr,
			ColParcelNumber: parcel.Number,
			ColLocation:     parcel.Location,
			ColZipCode:      parcel.ZipCode,
			ColNote:         noteNoAssessments,
		}}, nil
	}

	rows := make([]ResultRow, 0, len(assessments))
	for _, assessment := range assessments {
		rows = append(rows, mergeRow(addr, parcel, assessment))
	}
	return rows, nil
}

func mergeRow(addr string, parcel *Parcel, assessment carto.Row) ResultRow {
	row := ResultRow{
		ColInputAddress: addr,
		ColParcelNumber: parcel.Number,
		ColLocation:     parcel.Location,
		ColZipCode:      parcel.ZipCode,
	}
	for key, value := range assessment {
		switch key {
		case ColParcelNumber, ColLocation, ColZipCode:
			// Parcel fields win over assessment duplicates.
		default:
			row[key] = value
		}
	}
	return row
}

// dedupeAddresses trims and drops blanks, keeping the first occurrence of
// each distinct value in input order.
func dedupeAddresses(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, raw := range addresses {
		addr := strings.TrimSpace(raw)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		unique = append(unique, addr)
	}
	return unique
}

// orderColumns imposes the canonical report ordering: identifying columns
// first, then remaining columns in first-seen order, the diagnostic note
// last. Fetched rows are decoded maps, so "first-seen" within a single row
// is pinned by sorting that row's new keys; the result is stable no matter
// which addresses produced which columns. Columns absent from the merged
// set are omitted, not padded.
func orderColumns(rows []ResultRow) []string {
	identifying := []string{ColInputAddress, ColParcelNumber, ColLocation, ColZipCode, ColYear}

	present := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			present[key] = true
		}
	}

	columns := make([]string, 0, len(present))
	taken := make(map[string]bool, len(present))
	for _, col := range identifying {
		if present[col] {
			columns = append(columns, col)
			taken[col] = true
		}
	}

	for _, row := range rows {
		extras := make([]string, 0, len(row))
		for key := range row {
			if !taken[key] && key != ColNote {
				extras = append(extras, key)
			}
		}
		sort.Strings(extras)
		for _, key := range extras {
			columns = append(columns, key)
			taken[key] = true
		}
	}

	if present[ColNote] {
		columns = append(columns, ColNote)
	}
	return columns
}

func (a *Aggregator) now() time.Time {
	if a != nil && a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}
