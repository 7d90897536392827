package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parcelscope/parcelscope/internal/core"
	apperrors "github.com/parcelscope/parcelscope/internal/errors"
	"github.com/parcelscope/parcelscope/internal/server/handlers"
)

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := New("127.0.0.1", 0)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestLookupEndpoint(t *testing.T) {
	handlers.SetLookupRunner(func(ctx context.Context, addresses []string, years []int) *core.BatchResult {
		return &core.BatchResult{
			Columns: []string{core.ColInputAddress, core.ColYear},
			Rows: []core.ResultRow{
				{core.ColInputAddress: addresses[0], core.ColYear: years[0]},
			},
		}
	}, []int{2023, 2024, 2025, 2026})
	t.Cleanup(func() { handlers.SetLookupRunner(nil, nil) })

	srv := New("127.0.0.1", 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lookups",
		strings.NewReader(`{"addresses":["780 Union Street"],"years":[2025]}`))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result core.BatchResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.Rows, 1)
	require.Equal(t, "780 Union Street", result.Rows[0][core.ColInputAddress])
}

func TestLookupEndpointValidation(t *testing.T) {
	handlers.SetLookupRunner(func(ctx context.Context, addresses []string, years []int) *core.BatchResult {
		t.Fatal("runner must not be called for malformed input")
		return nil
	}, []int{2023, 2024, 2025, 2026})
	t.Cleanup(func() { handlers.SetLookupRunner(nil, nil) })

	srv := New("127.0.0.1", 0)

	cases := []string{
		`{"addresses":[],"years":[2025]}`,
		`{"addresses":["780 Union Street"],"years":[]}`,
		`{"addresses":["780 Union Street"],"years":[1999]}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lookups", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
