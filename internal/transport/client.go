// Package transport provides the HTTP plumbing shared by code that talks to
// the validator REST API. Responses are decoded into typed structures and
// non-2xx statuses surface as typed errors so callers can tell a rate limit
// from a per-variant server error without inspecting response objects.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality for the validator API.
type Client struct {
	http *http.Client
}

// New creates a new transport client.
func New() *Client {
	return &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// NewWithHTTPClient creates a transport client around an existing
// *http.Client. Used by tests to point at an httptest server.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{http: hc}
}

// Get performs a GET request with an Accept: application/json header.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

// GetJSON performs a GET request and decodes the JSON body into target.
// Non-2xx statuses return an *errors.APIError carrying the status code, so
// errors.IsRateLimited and errors.IsOracleUnavailable work on the result.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, url, target)
}

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(resp *http.Response, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errors.APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    truncate(string(body), 200),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}

	return nil
}

// truncate shortens server error bodies before they end up in logs.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
