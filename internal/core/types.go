package core

import "time"

// Well-known column names shared between the registry tables and the
// aggregated report. Everything else in a fetched row is opaque
// pass-through.
const (
	ColInputAddress    = "input_address"
	ColParcelNumber    = "parcel_number"
	ColLocation        = "location"
	ColZipCode         = "zip_code"
	ColYear            = "year"
	ColMarketValue     = "market_value"
	ColTaxableLand     = "taxable_land"
	ColTaxableBuilding = "taxable_building"
	ColExemptLand      = "exempt_land"
	ColExemptBuilding  = "exempt_building"
	ColNote            = "note"
)

// Parcel is the registry's unit of ownership, keyed by its opaque
// parcel number.
type Parcel struct {
	Number   string `json:"parcel_number"`
	Location string `json:"location"`
	ZipCode  string `json:"zip_code"`
}

// ResultRow is one flattened report row: the input address joined with
// whatever parcel and assessment fields resolved for it, plus an optional
// diagnostic note. Rows carrying a note and no assessment fields mark a
// resolution or fetch failure.
type ResultRow map[string]any

// BatchResult is the outcome of one batch run: an ordered table plus the
// per-address error strings collected along the way.
type BatchResult struct {
	RunID       string      `json:"run_id"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Columns     []string    `json:"columns"`
	Rows        []ResultRow `json:"rows"`
	Errors      []string    `json:"errors,omitempty"`
}
