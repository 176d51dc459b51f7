// Package apollo provides a client for the Apollo people-search API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crewcast-studio/enrich-cli/internal/resilience"
)

// Client defines the Apollo operations used for enrichment.
type Client interface {
	// SearchPeople runs one people search scoped to a company domain,
	// optionally narrowed by a free-text name filter.
	SearchPeople(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest describes one people search.
type SearchRequest struct {
	Domain   string
	Keywords string
	PerPage  int
}

// Person is one person record from a search.
type Person struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
}

// SearchResponse is the parsed search result.
type SearchResponse struct {
	People []Person `json:"people"`
}

// StatusError is returned for non-success HTTP responses so callers can
// map status codes to user-facing messages.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apollo: status %d: %s", e.StatusCode, e.Body)
}

// Option configures the Apollo client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRetry overrides the retry policy.
func WithRetry(r resilience.Retry) Option {
	return func(c *httpClient) {
		c.retry = r
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	retry   resilience.Retry
}

// NewClient creates a new Apollo client. Outbound calls carry an explicit
// timeout; the API's own defaults are never relied on.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.apollo.io/v1",
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		retry: resilience.DefaultRetry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchPeople(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 1
	}

	payload := map[string]any{
		"q_organization_domains": []string{req.Domain},
		"page":                   1,
		"per_page":               perPage,
	}
	if req.Keywords != "" {
		payload["q_keywords"] = req.Keywords
	}

	body, err := c.post(ctx, "/mixed_people/search", payload)
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal search response")
	}
	return &result, nil
}

// post sends a JSON POST and returns the response body. Transient statuses
// are retried; other non-2xx statuses surface as *StatusError.
func (c *httpClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	var body []byte
	err = c.retry.Do(ctx, "apollo"+path, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return eris.Wrap(err, "apollo: create request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return eris.Wrap(err, "apollo: request failed")
		}
		defer func() { _ = resp.Body.Close() }()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return eris.Wrap(err, "apollo: read response body")
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
			if resilience.RetryableStatus(resp.StatusCode) {
				return resilience.Transient(statusErr, resp.StatusCode)
			}
			return statusErr
		}

		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
