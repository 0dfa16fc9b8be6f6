// Package source talks to the Record Source, the backend API that serves
// catalog records.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/meur/dexview/internal/models"
)

// DefaultBaseURL is used when no override is configured
const DefaultBaseURL = "http://127.0.0.1:8000/"

// Endpoint paths exposed by the Record Source
const (
	PathSimple = "simple"
	PathFull   = "pokemon"
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.StatusCode)
}

// Client performs GET requests against a single base URL
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client. A zero timeout leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path relative to the base URL and returns the body
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url for %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}

// FetchRaw fetches /{id} and returns the document pretty-printed
func (c *Client) FetchRaw(ctx context.Context, id int) ([]byte, error) {
	body, err := c.Get(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return nil, fmt.Errorf("item %d: malformed json: %w", id, err)
	}
	return out.Bytes(), nil
}

// SimpleEndpoint fetches /simple and adapts it into simple records
type SimpleEndpoint struct {
	Client *Client
}

// Fetch performs one request
func (e SimpleEndpoint) Fetch(ctx context.Context) ([]models.Record, error) {
	body, err := e.Client.Get(ctx, PathSimple)
	if err != nil {
		return nil, err
	}
	return models.DecodeSimple(body)
}

// FullEndpoint fetches /pokemon and adapts it into full records
type FullEndpoint struct {
	Client *Client
}

// Fetch performs one request
func (e FullEndpoint) Fetch(ctx context.Context) ([]models.Record, error) {
	body, err := e.Client.Get(ctx, PathFull)
	if err != nil {
		return nil, err
	}
	return models.DecodeFull(body)
}
