package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/econstats/econstats"
	"go.uber.org/zap"
)

// Interface compliance check.
var _ econstats.Searcher = (*Client)(nil)

// Client implements [econstats.Searcher] for the EconStats API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new EconStats API [Client].
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchStream issues a streaming search request and returns an
// [econstats.Stream] that emits semantic events.
func (c *Client) SearchStream(ctx context.Context, req econstats.SearchRequest) (econstats.Stream, error) {
	httpReq, err := c.newRequest(ctx, streamPath, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("starting search stream", zap.String("query", req.Query))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body, c.logger), nil
}

// Search issues the non-streaming variant of the same query and returns
// the complete result.
func (c *Client) Search(ctx context.Context, req econstats.SearchRequest) (*econstats.Result, error) {
	httpReq, err := c.newRequest(ctx, searchPath, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("searching", zap.String("query", req.Query))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp)
	}

	var sr apiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}

	result := convertResult(sr)
	result.Query = req.Query
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, path string, req econstats.SearchRequest) (*http.Request, error) {
	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// buildRequest converts a SearchRequest to the wire shape. Prior queries
// are sent as user-role conversation entries.
func buildRequest(req econstats.SearchRequest) apiRequest {
	out := apiRequest{Query: req.Query}
	for _, q := range req.History {
		out.History = append(out.History, apiHistoryEntry{Role: "user", Content: q})
	}
	return out
}

// parseHTTPError converts a non-2xx response into an error.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
}
