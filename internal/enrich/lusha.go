package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/config"
	"github.com/crewcast-studio/enrich-cli/pkg/lusha"
)

// Contact-search narrowing for the prospecting flow: outreach-relevant
// departments at senior levels. The seniority values are Lusha's numeric
// tiers from manager up.
var (
	lushaDepartments = []string{"Marketing", "Sales", "Business Development"}
	lushaSeniorities = []int{5, 6, 7, 8, 9, 10}
)

const lushaContactPageSize = 10

// LushaProvider resolves emails via direct person lookup, falling back to
// domain-only prospecting (company search, contact search, bulk enrich).
type LushaProvider struct {
	cfg      config.LushaConfig
	features config.FeatureConfig
	client   lusha.Client
}

// NewLushaProvider creates the Lusha-backed provider.
func NewLushaProvider(cfg config.LushaConfig, features config.FeatureConfig, client lusha.Client) *LushaProvider {
	return &LushaProvider{cfg: cfg, features: features, client: client}
}

func (p *LushaProvider) Name() string { return ProviderLusha }

func (p *LushaProvider) Enabled() bool { return p.cfg.Enabled && p.cfg.Key != "" }

func (p *LushaProvider) CostPerLookup() float64 { return p.cfg.CostPerLookup }

func (p *LushaProvider) FindEmail(ctx context.Context, req Request) Response {
	if !p.Enabled() {
		return errorResponse(ProviderLusha, "lusha provider is disabled or missing an API key")
	}
	if req.Domain == "" {
		return errorResponse(ProviderLusha, "domain is required")
	}
	if IsSocialDomain(req.Domain) {
		return errorResponse(ProviderLusha, "social-media domains are not searchable in a B2B database")
	}

	domain := CleanDomain(req.Domain)

	if lookup, ok := p.directLookupRequest(req, domain); ok {
		resp, fallthru := p.directLookup(ctx, lookup)
		if !fallthru {
			return resp
		}
		// Clean miss: continue into prospecting.
	}

	return p.prospect(ctx, domain)
}

// directLookupRequest decides whether the request carries enough identity
// for a direct person lookup, in priority order: LinkedIn URL, known
// email, then full name plus domain.
func (p *LushaProvider) directLookupRequest(req Request, domain string) (lusha.PersonRequest, bool) {
	if req.LinkedInURL != "" {
		return lusha.PersonRequest{LinkedInURL: req.LinkedInURL}, true
	}
	if req.Email != "" {
		return lusha.PersonRequest{Email: req.Email}, true
	}
	if first, last := req.Names(); first != "" && last != "" {
		return lusha.PersonRequest{FirstName: first, LastName: last, Domain: domain}, true
	}
	return lusha.PersonRequest{}, false
}

// directLookup runs strategy one. The second return value is true when the
// caller should fall through to prospecting (a clean not-found); definitive
// errors and successes return the shaped response directly.
func (p *LushaProvider) directLookup(ctx context.Context, lookup lusha.PersonRequest) (Response, bool) {
	person, err := p.client.PersonLookup(ctx, lookup)
	if err != nil {
		if errors.Is(err, lusha.ErrNotFound) {
			zap.L().Debug("lusha: direct lookup missed, prospecting")
			return Response{}, true
		}
		return errorResponse(ProviderLusha, lushaErrorMessage(err)), false
	}

	emails := make([]string, 0, len(person.EmailAddresses))
	for _, e := range person.EmailAddresses {
		if e.Email != "" {
			emails = append(emails, e.Email)
		}
	}
	if len(emails) == 0 {
		return Response{}, true
	}

	contact := Contact{FullName: person.FullName, Emails: emails}
	if p.features.PhoneNumbers {
		for _, ph := range person.PhoneNumbers {
			if ph.Number != "" {
				contact.PhoneNumbers = append(contact.PhoneNumbers, ph.Number)
			}
		}
	}

	return successResponse(ProviderLusha, emails[0], emails, []Contact{contact}, p.cfg.CostPerLookup), false
}

// prospect runs the three-step domain-only flow.
func (p *LushaProvider) prospect(ctx context.Context, domain string) Response {
	companies, err := p.client.CompanySearch(ctx, domain)
	if err != nil {
		return errorResponse(ProviderLusha, lushaErrorMessage(err))
	}
	if len(companies) == 0 {
		return notFoundResponse(ProviderLusha, p.cfg.CostPerLookup)
	}
	company := companies[0]

	// The contact search filters by company name, not ID. Try the narrow
	// department/seniority filter first; on failure retry once with only
	// the name and work-email requirement.
	search, err := p.client.ContactSearch(ctx, lusha.ContactSearchRequest{
		CompanyName:  company.Name,
		Departments:  lushaDepartments,
		Seniorities:  lushaSeniorities,
		HasWorkEmail: true,
		Size:         lushaContactPageSize,
	})
	if err != nil {
		zap.L().Debug("lusha: filtered contact search failed, retrying broad",
			zap.String("company", company.Name),
			zap.Error(err),
		)
		search, err = p.client.ContactSearch(ctx, lusha.ContactSearchRequest{
			CompanyName:  company.Name,
			HasWorkEmail: true,
			Size:         lushaContactPageSize,
		})
		if err != nil {
			return errorResponse(ProviderLusha, lushaErrorMessage(err))
		}
	}
	if len(search.ContactIDs) == 0 {
		return notFoundResponse(ProviderLusha, p.cfg.CostPerLookup)
	}

	ids := search.ContactIDs
	if !p.features.BulkEnrichment {
		ids = ids[:1]
	}

	records, err := p.client.ContactEnrich(ctx, search.RequestID, ids)
	if err != nil {
		return errorResponse(ProviderLusha, lushaErrorMessage(err))
	}

	contacts, emails := buildContacts(records, p.features.PhoneNumbers)
	if len(emails) == 0 {
		if len(contacts) > 0 && p.features.PartialProfiles {
			return partialResponse(ProviderLusha, contacts[0], p.cfg.CostPerLookup)
		}
		return notFoundResponse(ProviderLusha, p.cfg.CostPerLookup)
	}

	return successResponse(ProviderLusha, emails[0], emails, contacts, p.cfg.CostPerLookup)
}

// buildContacts converts enrichment records, skipping failed ones, and
// collects the union of all revealed emails in record order.
func buildContacts(records []lusha.ContactRecord, includePhones bool) ([]Contact, []string) {
	var contacts []Contact
	var emails []string
	seen := make(map[string]struct{})

	for _, rec := range records {
		if !rec.IsSuccess {
			continue
		}
		contact := Contact{
			FirstName:   rec.Data.FirstName,
			LastName:    rec.Data.LastName,
			FullName:    rec.Data.FullName,
			Title:       rec.Data.JobTitle,
			LinkedInURL: rec.Data.LinkedInURL,
		}
		for _, e := range rec.Data.EmailAddresses {
			if e.Email == "" {
				continue
			}
			contact.Emails = append(contact.Emails, e.Email)
			if _, dup := seen[e.Email]; !dup {
				seen[e.Email] = struct{}{}
				emails = append(emails, e.Email)
			}
		}
		if includePhones {
			for _, ph := range rec.Data.PhoneNumbers {
				if ph.Number != "" {
					contact.PhoneNumbers = append(contact.PhoneNumbers, ph.Number)
				}
			}
		}
		if !contact.Empty() {
			contacts = append(contacts, contact)
		}
	}

	return contacts, emails
}

// lushaErrorMessage maps client failures to human-readable reasons.
func lushaErrorMessage(err error) string {
	var statusErr *lusha.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return "lusha authentication failed, check the API key"
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return "lusha rate limit exceeded"
		case statusErr.StatusCode >= 500:
			return "lusha server error"
		default:
			return fmt.Sprintf("lusha API error: %d", statusErr.StatusCode)
		}
	}
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return "lusha request timed out"
	}
	return "lusha request failed: " + err.Error()
}
