package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Searcher executes one search against a Jira site.
type Searcher interface {
	Search(ctx context.Context, domain string, auth AuthFunc, req SearchRequest) (*Response, error)
}

// Client handles communication with the Jira Cloud REST API.
type Client struct {
	Endpoint Endpoint     // Builds the per-domain search URL
	Client   *http.Client // Underlying HTTP client
}

// NewClient returns a Client for the given endpoint template.
func NewClient(endpoint Endpoint, timeout time.Duration, skipVerify bool) *Client {
	return &Client{
		Endpoint: endpoint,
		Client:   newHTTPClient(timeout, skipVerify),
	}
}

// Search posts req to the domain's search endpoint.
// Any HTTP response is returned as-is, including non-2xx ones; an error means
// no response could be obtained.
func (c *Client) Search(ctx context.Context, domain string, auth AuthFunc, req SearchRequest) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint.SearchURL(domain), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if auth != nil {
		auth(httpReq)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
