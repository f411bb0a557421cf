package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/marcus/persona-map/internal/types"
)

// DefaultBaseURL is the search capability endpoint.
const DefaultBaseURL = "https://api.exa.ai"

// MatchMode selects how the search capability interprets a query.
type MatchMode string

// Supported match modes.
const (
	MatchKeyword MatchMode = "keyword"
	MatchNeural  MatchMode = "neural"
	MatchAuto    MatchMode = "auto"
)

// Options configures a single search call.
type Options struct {
	NumResults     int
	MatchMode      MatchMode
	IncludeDomains []string
}

// Client is the search capability consumed by the adapter.
type Client interface {
	// Search issues one query and returns raw result records.
	Search(ctx context.Context, query string, opts Options) ([]types.SearchResult, error)
	// FetchContents retrieves full page text for URLs, keyed by URL.
	FetchContents(ctx context.Context, urls []string) (map[string]types.SearchResult, error)
}

// HTTPClient is a REST client for an Exa-style search API.
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a search client. The API key must already be resolved.
func NewHTTPClient(apiKey string, timeout time.Duration) (*HTTPClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *HTTPClient) WithBaseURL(baseURL string) *HTTPClient {
	c.baseURL = baseURL
	return c
}

type searchRequest struct {
	Query          string           `json:"query"`
	Type           string           `json:"type,omitempty"`
	NumResults     int              `json:"numResults,omitempty"`
	IncludeDomains []string         `json:"includeDomains,omitempty"`
	Contents       *contentsOptions `json:"contents,omitempty"`
}

type contentsOptions struct {
	Text       bool `json:"text"`
	Highlights bool `json:"highlights"`
}

type contentsRequest struct {
	URLs []string `json:"urls"`
	Text bool     `json:"text"`
}

type apiResult struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights"`
	Image      string   `json:"image"`
	Author     string   `json:"author"`
}

type apiResponse struct {
	Results []apiResult `json:"results"`
}

// Search issues one query against the search API.
func (c *HTTPClient) Search(ctx context.Context, query string, opts Options) ([]types.SearchResult, error) {
	req := searchRequest{
		Query:          query,
		Type:           string(opts.MatchMode),
		NumResults:     opts.NumResults,
		IncludeDomains: opts.IncludeDomains,
		Contents:       &contentsOptions{Text: true, Highlights: true},
	}

	var resp apiResponse
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}

	return toSearchResults(resp.Results), nil
}

// FetchContents retrieves page text for up to a handful of URLs.
func (c *HTTPClient) FetchContents(ctx context.Context, urls []string) (map[string]types.SearchResult, error) {
	if len(urls) == 0 {
		return map[string]types.SearchResult{}, nil
	}

	var resp apiResponse
	if err := c.post(ctx, "/contents", contentsRequest{URLs: urls, Text: true}, &resp); err != nil {
		return nil, err
	}

	byURL := make(map[string]types.SearchResult, len(resp.Results))
	for _, r := range toSearchResults(resp.Results) {
		byURL[r.URL] = r
	}
	return byURL, nil
}

// post sends a JSON request and decodes the response, mapping HTTP and
// transport failures onto the search error taxonomy.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &Error{Kind: KindTimeout, Message: "request timed out", Cause: err}
		}
		return &Error{Kind: KindTransport, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the body never leaks into error messages.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindAuthFailure, Message: fmt.Sprintf("HTTP %d from search API", resp.StatusCode)}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Message: "search API rate limit exceeded"}
		default:
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("HTTP %d from search API", resp.StatusCode)}
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func toSearchResults(results []apiResult) []types.SearchResult {
	out := make([]types.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, types.SearchResult{
			Title:      r.Title,
			URL:        r.URL,
			Text:       r.Text,
			Highlights: r.Highlights,
			ImageURL:   r.Image,
			Author:     r.Author,
		})
	}
	return out
}
