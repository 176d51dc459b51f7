// Package fetcher provides the bounded HTTPS page fetch the website
// scraper is built on: one URL in, a text body or a typed skip reason out.
package fetcher

import "context"

// SkipCause classifies why a candidate URL produced no body. Skips are
// diagnostics, not errors: the scraper moves on to the next candidate.
type SkipCause string

const (
	SkipRequest    SkipCause = "request_failed" // DNS, TLS, connection refused
	SkipTimeout    SkipCause = "timeout"
	SkipHTTPStatus SkipCause = "http_status"
	SkipEmptyBody  SkipCause = "empty_body"
	SkipRateLimit  SkipCause = "rate_limiter"
)

// Skip records one skipped candidate URL.
type Skip struct {
	URL    string    `json:"url"`
	Cause  SkipCause `json:"cause"`
	Detail string    `json:"detail,omitempty"`
}

// Fetcher fetches one URL and returns its body, or a Skip describing why
// there is none. Exactly one of the two return values is non-zero.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body string, skip *Skip)
}
