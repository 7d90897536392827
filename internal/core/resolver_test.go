package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parcelscope/parcelscope/internal/carto"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*carto.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return carto.NewClient(server.URL, time.Second), server
}

func TestResolverResolve(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		require.Contains(t, q, "ILIKE '%780 UNION ST%'")
		require.Contains(t, q, "ORDER BY parcel_number ASC LIMIT 1")
		_, _ = w.Write([]byte(`{"rows":[{"parcel_number":"303045200","location":"780 UNION ST","zip_code":"19104"}]}`))
	})

	resolver := &Resolver{Client: client}
	parcel, err := resolver.Resolve(context.Background(), "%780 UNION ST%")
	require.NoError(t, err)
	require.NotNil(t, parcel)
	require.Equal(t, "303045200", parcel.Number)
	require.Equal(t, "780 UNION ST", parcel.Location)
	require.Equal(t, "19104", parcel.ZipCode)
}

func TestResolverNoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[]}`))
	})

	resolver := &Resolver{Client: client}
	parcel, err := resolver.Resolve(context.Background(), "%123 NOWHERE ST%")
	require.NoError(t, err)
	require.Nil(t, parcel)
}

func TestResolverEmptyPatternSkipsQuery(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"rows":[]}`))
	})

	resolver := &Resolver{Client: client}
	parcel, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, parcel)
	require.False(t, called)
}

func TestResolverPropagatesQueryError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resolver := &Resolver{Client: client}
	_, err := resolver.Resolve(context.Background(), "%780 UNION ST%")

	var qerr *carto.QueryError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, http.StatusBadGateway, qerr.StatusCode)
}

func TestResolverNumericZipCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[{"parcel_number":"1","location":"1 MAIN ST","zip_code":19104}]}`))
	})

	resolver := &Resolver{Client: client}
	parcel, err := resolver.Resolve(context.Background(), "%1 MAIN ST%")
	require.NoError(t, err)
	require.Equal(t, "19104", parcel.ZipCode)
}
