package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/config"
	"github.com/crewcast-studio/enrich-cli/pkg/apollo"
)

// ApolloProvider resolves emails with a single people-search call keyed by
// domain and, when available, a free-text name filter.
type ApolloProvider struct {
	cfg      config.ApolloConfig
	features config.FeatureConfig
	client   apollo.Client
}

// NewApolloProvider creates the Apollo-backed provider.
func NewApolloProvider(cfg config.ApolloConfig, features config.FeatureConfig, client apollo.Client) *ApolloProvider {
	return &ApolloProvider{cfg: cfg, features: features, client: client}
}

func (p *ApolloProvider) Name() string { return ProviderApollo }

func (p *ApolloProvider) Enabled() bool { return p.cfg.Enabled && p.cfg.Key != "" }

func (p *ApolloProvider) CostPerLookup() float64 { return p.cfg.CostPerLookup }

func (p *ApolloProvider) FindEmail(ctx context.Context, req Request) Response {
	if !p.Enabled() {
		return errorResponse(ProviderApollo, "apollo provider is disabled or missing an API key")
	}
	if req.Domain == "" {
		return errorResponse(ProviderApollo, "domain is required")
	}
	if IsSocialDomain(req.Domain) {
		return errorResponse(ProviderApollo, "social-media domains are not searchable in a B2B database")
	}

	domain := CleanDomain(req.Domain)
	search := apollo.SearchRequest{Domain: domain, PerPage: 1}
	if first, last := req.Names(); first != "" && last != "" {
		search.Keywords = first + " " + last
	}

	result, err := p.client.SearchPeople(ctx, search)
	if err != nil {
		return errorResponse(ProviderApollo, apolloErrorMessage(err))
	}

	if len(result.People) == 0 {
		zap.L().Debug("apollo: no people for domain", zap.String("domain", domain))
		return notFoundResponse(ProviderApollo, p.cfg.CostPerLookup)
	}

	person := result.People[0]
	contact := Contact{
		FirstName:   person.FirstName,
		LastName:    person.LastName,
		FullName:    person.Name,
		Title:       person.Title,
		LinkedInURL: person.LinkedInURL,
	}

	if person.Email == "" {
		// Found someone, just no email. Preserve the identity so the
		// caller keeps the signal.
		if p.features.PartialProfiles {
			return partialResponse(ProviderApollo, contact, p.cfg.CostPerLookup)
		}
		return notFoundResponse(ProviderApollo, p.cfg.CostPerLookup)
	}

	contact.Emails = []string{person.Email}
	return successResponse(ProviderApollo, person.Email, []string{person.Email}, []Contact{contact}, p.cfg.CostPerLookup)
}

// apolloErrorMessage maps client failures to human-readable reasons.
func apolloErrorMessage(err error) string {
	var statusErr *apollo.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return "apollo authentication failed, check the API key"
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return "apollo rate limit exceeded"
		case statusErr.StatusCode >= 500:
			return "apollo server error"
		default:
			return fmt.Sprintf("apollo API error: %d", statusErr.StatusCode)
		}
	}
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return "apollo request timed out"
	}
	return "apollo request failed: " + err.Error()
}
