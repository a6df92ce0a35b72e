// Package cloud syncs the tool catalog with a Supabase REST backend.
//
// The backend exposes the catalog as a single "tools" table through
// PostgREST. Reads need only the anon key; writes go through the service
// key when configured. ReplaceAll is the only write shape the backend
// supports: clear the table, then insert the full snapshot.
//
// Example usage:
//
//	client, err := cloud.NewClient("https://xyz.supabase.co", anonKey,
//		cloud.WithServiceKey(serviceKey))
//	if err != nil { ... }
//
//	tools, err := client.FetchAll(ctx)
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/toolmap/pkg/catalogs"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

const toolsEndpoint = "/rest/v1/tools"

// deleteFilter matches every real row while refusing a bare unfiltered
// DELETE, which PostgREST rejects.
const deleteFilter = "id=neq.placeholder_safety_check"

// Client is a Supabase REST catalog client. Safe for concurrent use.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithServiceKey sets the privileged key used for writes. Without it,
// writes fall back to the anon key and succeed only if row-level security
// allows them.
func WithServiceKey(key string) Option {
	return func(c *Client) { c.serviceKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger sets the client logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a client for the given Supabase project URL and anon
// key.
func NewClient(baseURL, anonKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, &errors.ConfigError{Component: "cloud", Message: "base URL is required"}
	}
	if strings.TrimSpace(anonKey) == "" {
		return nil, &errors.ConfigError{Component: "cloud", Message: "anon key is required"}
	}

	c := &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	return c, nil
}

// FetchAll retrieves every tool row.
func (c *Client) FetchAll(ctx context.Context) ([]catalogs.Tool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+toolsEndpoint+"?select=*", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, c.anonKey)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var tools []catalogs.Tool
	if err := json.Unmarshal(body, &tools); err != nil {
		return nil, &errors.ParseError{
			Format:  "json",
			Source:  toolsEndpoint,
			Message: "invalid tools payload",
			Err:     err,
		}
	}
	c.logger.Debug().Int("count", len(tools)).Msg("fetched cloud catalog")
	return tools, nil
}

// ReplaceAll overwrites the cloud catalog with the given snapshot: delete
// every row, then insert the new set in one request.
func (c *Client) ReplaceAll(ctx context.Context, tools []catalogs.Tool) error {
	if err := c.deleteAll(ctx); err != nil {
		return &errors.SyncError{Operation: "clear", Err: err}
	}
	if len(tools) == 0 {
		return nil
	}

	payload, err := json.Marshal(tools)
	if err != nil {
		return &errors.SyncError{Operation: "publish", Count: len(tools), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+toolsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.authorize(req, c.writeKey())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	if _, err := c.do(req); err != nil {
		return &errors.SyncError{Operation: "publish", Count: len(tools), Err: err}
	}
	c.logger.Info().Int("count", len(tools)).Msg("published catalog to cloud")
	return nil
}

// Count returns the number of tool rows without transferring them.
func (c *Client) Count(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+toolsEndpoint+"?select=*", nil)
	if err != nil {
		return 0, err
	}
	c.authorize(req, c.anonKey)
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &errors.APIError{Endpoint: toolsEndpoint, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, c.statusError(resp, nil)
	}

	// Content-Range looks like "0-24/25"; the total follows the slash.
	contentRange := resp.Header.Get("Content-Range")
	if idx := strings.LastIndex(contentRange, "/"); idx >= 0 {
		if total, err := strconv.Atoi(contentRange[idx+1:]); err == nil {
			return total, nil
		}
	}
	return 0, &errors.APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   toolsEndpoint,
		Message:    "missing row count in Content-Range",
	}
}

func (c *Client) deleteAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+toolsEndpoint+"?"+deleteFilter, nil)
	if err != nil {
		return err
	}
	c.authorize(req, c.writeKey())

	_, err = c.do(req)
	return err
}

// writeKey prefers the service key for mutations.
func (c *Client) writeKey() string {
	if c.serviceKey != "" {
		return c.serviceKey
	}
	return c.anonKey
}

func (c *Client) authorize(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.APIError{Endpoint: req.URL.Path, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.APIError{StatusCode: resp.StatusCode, Endpoint: req.URL.Path, Message: "reading response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp, body)
	}
	return body, nil
}

func (c *Client) statusError(resp *http.Response, body []byte) error {
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = resp.Status
	}
	return &errors.APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   resp.Request.URL.Path,
		Message:    message,
	}
}
