package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Contact pages render fine to plain HTTP clients, but some hosts block
// obvious bot agents, so the fetcher presents a current browser UA.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

const maxBodyBytes = 512 * 1024

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// PerHostRate throttles requests to each host the fetcher has not
	// seen before. Zero disables the default throttle.
	PerHostRate rate.Limit
	// PerHostBurst is the bucket size for PerHostRate limiters. Zero
	// means 1.
	PerHostBurst int
	// RateLimiters overrides PerHostRate for specific hosts.
	RateLimiters map[string]*rate.Limiter
}

// HTTPFetcher implements Fetcher with net/http: per-fetch timeout, browser
// user agent, bounded body reads, per-host rate limiting.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTP creates an HTTPFetcher with the given options.
func NewHTTP(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.PerHostBurst == 0 {
		opts.PerHostBurst = 1
	}
	limiters := make(map[string]*rate.Limiter, len(opts.RateLimiters))
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: opts.Timeout,
				}).DialContext,
				TLSHandshakeTimeout: opts.Timeout,
			},
		},
		opts:     opts,
		limiters: limiters,
	}
}

// Fetch retrieves targetURL and returns its body, or a Skip.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (string, *Skip) {
	if lim := f.limiterFor(targetURL); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return "", &Skip{URL: targetURL, Cause: SkipRateLimit, Detail: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", &Skip{URL: targetURL, Cause: SkipRequest, Detail: err.Error()}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Skip{URL: targetURL, Cause: classify(err), Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", &Skip{URL: targetURL, Cause: SkipHTTPStatus, Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Skip{URL: targetURL, Cause: classify(err), Detail: err.Error()}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", &Skip{URL: targetURL, Cause: SkipEmptyBody}
	}

	zap.L().Debug("fetcher: page fetched",
		zap.String("url", targetURL),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

// limiterFor returns the limiter governing targetURL's host, creating one
// at the default rate for hosts seen for the first time.
func (f *HTTPFetcher) limiterFor(targetURL string) *rate.Limiter {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil
	}
	host := u.Hostname()

	f.mu.Lock()
	defer f.mu.Unlock()
	if lim, ok := f.limiters[host]; ok {
		return lim
	}
	if f.opts.PerHostRate <= 0 {
		return nil
	}
	lim := rate.NewLimiter(f.opts.PerHostRate, f.opts.PerHostBurst)
	f.limiters[host] = lim
	return lim
}

// classify maps a transport error to a skip cause.
func classify(err error) SkipCause {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return SkipTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return SkipTimeout
	}
	return SkipRequest
}
