// Package enrich resolves contact emails for a domain or person across
// pluggable data providers with configurable fallback and cost accounting.
package enrich

import "context"

// Provider names. The set is closed; fallback iteration follows the order
// providers are passed to NewService.
const (
	ProviderApollo  = "apollo"
	ProviderLusha   = "lusha"
	ProviderScraper = "website_scraper"

	// ProviderNone is reported when no provider could be consulted.
	ProviderNone = "none"
)

// Request describes one enrichment lookup. Domain is required; everything
// else narrows the search when present.
type Request struct {
	Domain         string `json:"domain"`
	PersonName     string `json:"personName,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Email          string `json:"email,omitempty"`
	LinkedInURL    string `json:"linkedinUrl,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// Names returns the effective first/last name for the request. Explicit
// FirstName/LastName win over a split of PersonName.
func (r Request) Names() (first, last string) {
	first, last = r.FirstName, r.LastName
	if first == "" && last == "" && r.PersonName != "" {
		first, last = ParseName(r.PersonName)
	}
	return first, last
}

// Contact is one person discovered during enrichment.
type Contact struct {
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	FullName     string   `json:"fullName,omitempty"`
	Title        string   `json:"title,omitempty"`
	LinkedInURL  string   `json:"linkedinUrl,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
}

// Empty reports whether the contact carries no usable signal. Contacts
// with neither an email nor a name are never recorded on a response.
func (c Contact) Empty() bool {
	return len(c.Emails) == 0 && c.FirstName == "" && c.LastName == "" && c.FullName == ""
}

// Response is the normalized outcome of a lookup. Provider is always set,
// including on errors. The name/title fields describe the contact that owns
// Email, never just the first contact found.
type Response struct {
	Email        string    `json:"email,omitempty"`
	Emails       []string  `json:"emails,omitempty"`
	Contacts     []Contact `json:"contacts,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Title        string    `json:"title,omitempty"`
	LinkedInURL  string    `json:"linkedinUrl,omitempty"`
	PhoneNumbers []string  `json:"phoneNumbers,omitempty"`
	Found        bool      `json:"found"`
	Provider     string    `json:"provider"`
	Error        string    `json:"error,omitempty"`
	CostEstimate float64   `json:"costEstimate"`
}

// Provider is one independently enabled email-discovery backend.
type Provider interface {
	// Name returns the fixed provider identifier.
	Name() string
	// Enabled is re-checked on every call: config flag plus credential.
	Enabled() bool
	// CostPerLookup is the USD cost of one queried lookup.
	CostPerLookup() float64
	// FindEmail runs the provider's search protocol. Failures are shaped
	// into the response, never returned as errors.
	FindEmail(ctx context.Context, req Request) Response
}
