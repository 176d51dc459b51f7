package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/config"
	"github.com/crewcast-studio/enrich-cli/internal/extract"
	"github.com/crewcast-studio/enrich-cli/internal/fetcher"
)

// ScraperProvider is the free fallback: it crawls a domain's likely
// contact pages and runs the email extractor over each. Individual page
// failures are recorded as skips and never abort the search.
type ScraperProvider struct {
	cfg   config.ScraperConfig
	fetch fetcher.Fetcher
}

// NewScraperProvider creates the website-scraper provider.
func NewScraperProvider(cfg config.ScraperConfig, fetch fetcher.Fetcher) *ScraperProvider {
	return &ScraperProvider{cfg: cfg, fetch: fetch}
}

func (p *ScraperProvider) Name() string { return ProviderScraper }

func (p *ScraperProvider) Enabled() bool { return p.cfg.Enabled }

// CostPerLookup is always zero: scraping has no per-query API cost.
func (p *ScraperProvider) CostPerLookup() float64 { return 0 }

func (p *ScraperProvider) FindEmail(ctx context.Context, req Request) Response {
	if !p.Enabled() {
		return errorResponse(ProviderScraper, "website scraper is disabled")
	}
	if req.Domain == "" {
		return errorResponse(ProviderScraper, "domain is required")
	}
	if IsSocialDomain(req.Domain) {
		return errorResponse(ProviderScraper, "social-media domains have no scrapeable contact page")
	}

	domain := CleanDomain(req.Domain)

	emails, skips := p.scrape(ctx, domain, req.TargetLanguage)
	if len(skips) > 0 {
		zap.L().Debug("scraper: skipped candidates",
			zap.String("domain", domain),
			zap.Int("count", len(skips)),
			zap.Any("skips", skips),
		)
	}
	if len(emails) == 0 {
		return notFoundResponse(ProviderScraper, 0)
	}

	primary := extract.Select(domain, emails)
	return successResponse(ProviderScraper, primary, emails, nil, 0)
}

// scrape walks the contact-page candidates and stops at the first page
// yielding an email; the homepage is a structured-data-only last resort.
// The skip list records why each fetched candidate produced nothing.
func (p *ScraperProvider) scrape(ctx context.Context, domain, targetLanguage string) ([]string, []fetcher.Skip) {
	var skips []fetcher.Skip

	for _, path := range contactPaths(targetLanguage, p.cfg.ContactPaths) {
		body, pageSkips := p.fetchFirst(ctx, domain, path)
		skips = append(skips, pageSkips...)
		if body == "" {
			continue
		}
		if emails := extract.Emails(body); len(emails) > 0 {
			return emails, skips
		}
	}

	// Raw pattern matching over a homepage drowns in script and CSS
	// noise, so only structured markup is trusted there.
	body, pageSkips := p.fetchFirst(ctx, domain, "/")
	skips = append(skips, pageSkips...)
	if body != "" {
		if emails := extract.StructuredEmails(body); len(emails) > 0 {
			return emails, skips
		}
	}

	return nil, skips
}

// fetchFirst tries the www-prefixed URL then the bare host, returning the
// first non-empty body.
func (p *ScraperProvider) fetchFirst(ctx context.Context, domain, path string) (string, []fetcher.Skip) {
	var skips []fetcher.Skip
	for _, u := range []string{
		"https://www." + domain + path,
		"https://" + domain + path,
	} {
		body, skip := p.fetch.Fetch(ctx, u)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		return body, skips
	}
	return "", skips
}
