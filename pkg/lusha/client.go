// Package lusha provides a client for the Lusha contact API: direct person
// lookup plus the three-step prospecting flow (company search, contact
// search, bulk contact enrichment).
package lusha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crewcast-studio/enrich-cli/internal/resilience"
)

// ErrNotFound is returned when the API answered cleanly but has no record
// for the query. Callers fall through to the next strategy on it.
var ErrNotFound = eris.New("lusha: not found")

// Client defines the Lusha operations used for enrichment.
type Client interface {
	// PersonLookup resolves one known person to their contact details.
	PersonLookup(ctx context.Context, req PersonRequest) (*PersonResponse, error)
	// CompanySearch finds companies by domain.
	CompanySearch(ctx context.Context, domain string) ([]Company, error)
	// ContactSearch lists contact IDs at a company. The returned request
	// token must be echoed to ContactEnrich.
	ContactSearch(ctx context.Context, req ContactSearchRequest) (*ContactSearchResponse, error)
	// ContactEnrich reveals emails and phones for previously searched
	// contact IDs.
	ContactEnrich(ctx context.Context, requestID string, contactIDs []string) ([]ContactRecord, error)
}

// PersonRequest identifies a person for direct lookup. Exactly one of the
// identifying combinations must be set: LinkedInURL, Email, or
// FirstName+LastName+Domain.
type PersonRequest struct {
	FirstName   string
	LastName    string
	Domain      string
	Email       string
	LinkedInURL string
}

// EmailAddress is one revealed email.
type EmailAddress struct {
	Email string `json:"email"`
	Type  string `json:"emailType,omitempty"`
}

// PhoneNumber is one revealed phone number.
type PhoneNumber struct {
	Number string `json:"internationalNumber"`
	Type   string `json:"phoneType,omitempty"`
}

// PersonResponse is the direct-lookup result.
type PersonResponse struct {
	FullName       string         `json:"fullName"`
	EmailAddresses []EmailAddress `json:"emailAddresses"`
	PhoneNumbers   []PhoneNumber  `json:"phoneNumbers"`
}

// Company is one company-search hit.
type Company struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"fqdn"`
}

// ContactSearchRequest filters contacts at one company. The API matches
// companies by name, not ID.
type ContactSearchRequest struct {
	CompanyName  string
	Departments  []string
	Seniorities  []int
	HasWorkEmail bool
	Size         int
}

// ContactSearchResponse carries the correlation token required by
// ContactEnrich plus the matched contact IDs.
type ContactSearchResponse struct {
	RequestID  string
	ContactIDs []string
}

// ContactRecord is one per-contact result from bulk enrichment.
type ContactRecord struct {
	ContactID string      `json:"contactId"`
	IsSuccess bool        `json:"isSuccess"`
	Data      ContactData `json:"data"`
}

// ContactData holds the revealed fields of one contact.
type ContactData struct {
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	FullName       string         `json:"fullName"`
	JobTitle       string         `json:"jobTitle"`
	LinkedInURL    string         `json:"linkedinUrl"`
	EmailAddresses []EmailAddress `json:"emailAddresses"`
	PhoneNumbers   []PhoneNumber  `json:"phoneNumbers"`
}

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lusha: status %d: %s", e.StatusCode, e.Body)
}

// Option configures the Lusha client.
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

// NewClient creates a new Lusha client with an explicit request timeout.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.lusha.com",
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

func (c *httpClient) PersonLookup(ctx context.Context, req PersonRequest) (*PersonResponse, error) {
	q := url.Values{}
	switch {
	case req.LinkedInURL != "":
		q.Set("linkedinUrl", req.LinkedInURL)
	case req.Email != "":
		q.Set("email", req.Email)
	default:
		q.Set("firstName", req.FirstName)
		q.Set("lastName", req.LastName)
		q.Set("companyDomain", req.Domain)
	}

	body, err := c.do(ctx, http.MethodGet, "/v2/person?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result PersonResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "lusha: unmarshal person response")
	}
	return &result, nil
}

func (c *httpClient) CompanySearch(ctx context.Context, domain string) ([]Company, error) {
	payload := map[string]any{
		"filters": map[string]any{
			"domains": []string{domain},
		},
	}

	body, err := c.do(ctx, http.MethodPost, "/prospecting/company/search", payload)
	if err != nil {
		return nil, err
	}

	// The response shape varies across API versions: a bare array, or the
	// list under companies/data/results.
	var companies []Company
	for _, raw := range firstArray(body, "companies", "data", "results") {
		var comp Company
		if err := json.Unmarshal(raw, &comp); err != nil {
			continue
		}
		companies = append(companies, comp)
	}
	return companies, nil
}

func (c *httpClient) ContactSearch(ctx context.Context, req ContactSearchRequest) (*ContactSearchResponse, error) {
	size := req.Size
	if size <= 0 {
		size = 20
	}

	filters := map[string]any{
		"companyNames": []string{req.CompanyName},
	}
	if len(req.Departments) > 0 {
		filters["departments"] = req.Departments
	}
	if len(req.Seniorities) > 0 {
		filters["seniorityLevels"] = req.Seniorities
	}
	if req.HasWorkEmail {
		filters["existingDataPoints"] = []string{"work_email"}
	}

	payload := map[string]any{
		"pages":   map[string]int{"page": 0, "size": size},
		"filters": filters,
	}

	body, err := c.do(ctx, http.MethodPost, "/prospecting/contact/search", payload)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, eris.Wrap(err, "lusha: unmarshal contact search response")
	}

	resp := &ContactSearchResponse{RequestID: envelope.RequestID}
	for _, raw := range firstArray(body, "contacts", "data", "results") {
		var contact struct {
			ContactID string `json:"contactId"`
		}
		if err := json.Unmarshal(raw, &contact); err != nil || contact.ContactID == "" {
			continue
		}
		resp.ContactIDs = append(resp.ContactIDs, contact.ContactID)
	}
	return resp, nil
}

func (c *httpClient) ContactEnrich(ctx context.Context, requestID string, contactIDs []string) ([]ContactRecord, error) {
	payload := map[string]any{
		"requestId":  requestID,
		"contactIds": contactIDs,
	}

	body, err := c.do(ctx, http.MethodPost, "/prospecting/contact/enrich", payload)
	if err != nil {
		return nil, err
	}

	var records []ContactRecord
	for _, raw := range firstArray(body, "contacts", "data", "results") {
		var rec ContactRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// do sends one API request and returns the response body. A 404 maps to
// ErrNotFound; transient statuses are retried; other failures surface as
// *StatusError.
func (c *httpClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var raw []byte
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, eris.Wrap(err, "lusha: marshal request")
		}
	}

	var body []byte
	err := c.retry.Do(ctx, "lusha "+path, func(ctx context.Context) error {
		var reader io.Reader
		if raw != nil {
			reader = bytes.NewReader(raw)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return eris.Wrap(err, "lusha: create request")
		}
		req.Header.Set("api_key", c.apiKey)
		if raw != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return eris.Wrap(err, "lusha: request failed")
		}
		defer func() { _ = resp.Body.Close() }()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return eris.Wrap(err, "lusha: read response body")
		}

		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
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
