// Package carto talks to a Carto-style SQL-over-HTTP query service: a
// single GET endpoint accepting a complete statement in the q parameter and
// returning {"rows": [...]} JSON.
package carto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Philadelphia open-data query endpoint.
const DefaultBaseURL = "https://phl.carto.com/api/v2/sql"

// maxErrorBody bounds how much of a failed response body is kept for
// diagnostics.
const maxErrorBody = 512

// Row is one result record. The remote schema is not enumerable in advance,
// so every field is preserved verbatim under its wire name.
type Row map[string]any

// QueryError is the single failure kind for a query call: non-success
// status, transport error, timeout, or malformed body.
type QueryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query failed: %v", e.Err)
	}
	return fmt.Sprintf("query failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Client executes statements against the remote query service. The zero
// value is not usable; construct with NewClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client with a bounded request timeout. There is no
// retry: the remote service documents no retry contract, and the caller
// owns isolation policy.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Execute runs one statement and returns the result rows. Any failure is
// reported as a *QueryError.
func (c *Client) Execute(ctx context.Context, stmt *Statement) ([]Row, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("carto client is not configured")
	}
	if stmt == nil {
		return nil, errors.New("statement is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	query := url.Values{}
	query.Set("q", stmt.Serialize())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &QueryError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload struct {
		Rows []Row `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &QueryError{StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed response body: %w", err)}
	}

	return payload.Rows, nil
}
