package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelscope/parcelscope/internal/carto"
	"github.com/parcelscope/parcelscope/internal/core"
	"github.com/parcelscope/parcelscope/internal/observability"
	"github.com/parcelscope/parcelscope/internal/server/handlers"
)

// newFakeRegistry serves the SQL-over-HTTP endpoint with canned parcel and
// assessment rows, dispatching on the table named in the query.
func newFakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(query, "FROM opa_properties_public"):
			if strings.Contains(query, "%780 UNION ST%") {
				_, _ = w.Write([]byte(`{"rows":[{"parcel_number":"343059000","location":"780 UNION ST","zip_code":"19104"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"rows":[]}`))
		case strings.Contains(query, "FROM assessments"):
			_, _ = w.Write([]byte(`{"rows":[` +
				`{"parcel_number":"343059000","year":2024,"market_value":150000,"taxable_land":30000,"taxable_building":120000},` +
				`{"parcel_number":"343059000","year":2025,"market_value":165000,"taxable_land":33000,"taxable_building":132000}` +
				`]}`))
		default:
			_, _ = w.Write([]byte(`{"rows":[]}`))
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestLookupEndpoint_EndToEnd(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	registry := newFakeRegistry(t)
	client := carto.NewClient(registry.URL, 5*time.Second)
	aggregator := &core.Aggregator{
		Resolver: &core.Resolver{Client: client},
		Fetcher:  &core.Fetcher{Client: client},
	}

	handlers.SetLookupRunner(func(ctx context.Context, addresses []string, years []int) *core.BatchResult {
		return aggregator.Run(ctx, addresses, years)
	}, []int{2023, 2024, 2025, 2026})
	handlers.InitHealthManager("test")

	ts, httpClient := newTestServer(t, nil)

	body, err := json.Marshal(map[string]any{
		"addresses": []string{"780 Union Street", "99 Nowhere Road"},
		"years":     []int{2024, 2025},
	})
	require.NoError(t, err)

	resp, err := httpClient.Post(ts.URL+"/api/v1/lookups", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result core.BatchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, "780 Union Street", result.Rows[0][core.ColInputAddress])
	assert.Equal(t, "343059000", result.Rows[0][core.ColParcelNumber])
	assert.EqualValues(t, 2024, result.Rows[0][core.ColYear])
	assert.EqualValues(t, 150000, result.Rows[0][core.ColMarketValue])
	assert.EqualValues(t, 2025, result.Rows[1][core.ColYear])

	assert.Equal(t, "99 Nowhere Road", result.Rows[2][core.ColInputAddress])
	assert.Equal(t, "no parcel found", result.Rows[2][core.ColNote])

	assert.Empty(t, result.Errors)
}

func TestLookupEndpoint_RejectsUnknownYear(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info")

	handlers.SetLookupRunner(func(ctx context.Context, addresses []string, years []int) *core.BatchResult {
		t.Fatal("runner should not be invoked for invalid input")
		return nil
	}, []int{2023, 2024, 2025, 2026})
	handlers.InitHealthManager("test")

	ts, httpClient := newTestServer(t, nil)

	body := []byte(`{"addresses":["780 Union Street"],"years":[1999]}`)
	resp, err := httpClient.Post(ts.URL+"/api/v1/lookups", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
