// Package external fetches a remote JSON collection for the passthrough
// endpoint.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
)

// Client fetches the upstream JSON list.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient returns a Client for the given upstream URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the full upstream collection. Any transport or decode
// failure surfaces as an external-category error so the handler can map
// it to a gateway error.
func (c *Client) Fetch(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to build upstream request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "upstream request failed").
			WithCode(http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(
			fmt.Sprintf("upstream responded with status %d", resp.StatusCode),
			errors.CategoryExternal,
		).WithCode(http.StatusBadGateway)
	}

	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "failed to decode upstream payload").
			WithCode(http.StatusBadGateway)
	}

	return out, nil
}
