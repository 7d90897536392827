package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/parcelscope/parcelscope/internal/core"
	apperrors "github.com/parcelscope/parcelscope/internal/errors"
	"github.com/parcelscope/parcelscope/internal/metrics"
)

// LookupRunner executes one batch lookup. The serve command injects a
// runner built from the loaded configuration.
type LookupRunner func(ctx context.Context, addresses []string, years []int) *core.BatchResult

var lookupRunner LookupRunner

// YearMenu is the selectable year range, injected alongside the runner.
var yearMenu []int

// SetLookupRunner injects the batch runner and the selectable year menu.
func SetLookupRunner(runner LookupRunner, years []int) {
	lookupRunner = runner
	yearMenu = years
}

// LookupRequest is the batch lookup request body.
type LookupRequest struct {
	Addresses []string `json:"addresses"`
	Years     []int    `json:"years"`
}

// LookupHandler runs a batch lookup and returns the aggregated table.
func LookupHandler(w http.ResponseWriter, r *http.Request) {
	if lookupRunner == nil {
		respondWithError(w, r, apperrors.NewInternalError("lookup runner not configured"))
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "request body must be JSON"))
		return
	}

	if len(req.Addresses) == 0 {
		respondWithError(w, r, apperrors.NewValidationError("at least one address is required"))
		return
	}
	if len(req.Years) == 0 {
		respondWithError(w, r, apperrors.NewValidationError("at least one year is required"))
		return
	}
	for _, year := range req.Years {
		if !yearSelectable(year) {
			respondWithError(w, r, apperrors.NewValidationError(fmt.Sprintf("year %d is outside the selectable range", year)))
			return
		}
	}

	result := lookupRunner(r.Context(), req.Addresses, req.Years)
	metrics.RecordBatchRun(len(req.Addresses), len(result.Rows), len(result.Errors))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

func yearSelectable(year int) bool {
	if len(yearMenu) == 0 {
		return true
	}
	for _, y := range yearMenu {
		if y == year {
			return true
		}
	}
	return false
}
