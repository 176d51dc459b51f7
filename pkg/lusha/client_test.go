package lusha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewcast-studio/enrich-cli/internal/resilience"
)

func noRetry() Option {
	return WithRetry(resilience.Retry{Attempts: 1, Backoff: time.Millisecond, MaxBackoff: time.Millisecond})
}

func TestPersonLookup_ByName(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/person", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api_key"))
		assert.Equal(t, "Jane", r.URL.Query().Get("firstName"))
		assert.Equal(t, "Doe", r.URL.Query().Get("lastName"))
		assert.Equal(t, "acme.com", r.URL.Query().Get("companyDomain"))

		_ = json.NewEncoder(w).Encode(PersonResponse{
			FullName:       "Jane Doe",
			EmailAddresses: []EmailAddress{{Email: "jane@acme.com"}},
			PhoneNumbers:   []PhoneNumber{{Number: "+1 555 0100"}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.PersonLookup(context.Background(), PersonRequest{
		FirstName: "Jane", LastName: "Doe", Domain: "acme.com",
	})

	require.NoError(t, err)
	require.Len(t, got.EmailAddresses, 1)
	assert.Equal(t, "jane@acme.com", got.EmailAddresses[0].Email)
}

func TestPersonLookup_IdentifierPriority(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// LinkedIn URL wins over email and name when several are present.
		assert.Equal(t, "https://linkedin.com/in/janedoe", r.URL.Query().Get("linkedinUrl"))
		assert.Empty(t, r.URL.Query().Get("email"))
		assert.Empty(t, r.URL.Query().Get("firstName"))
		_ = json.NewEncoder(w).Encode(PersonResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.PersonLookup(context.Background(), PersonRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	})
	require.NoError(t, err)
}

func TestPersonLookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), noRetry())
	_, err := client.PersonLookup(context.Background(), PersonRequest{Email: "nobody@acme.com"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonLookup_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad", WithBaseURL(srv.URL), noRetry())
	_, err := client.PersonLookup(context.Background(), PersonRequest{Email: "a@b.com"})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestCompanySearch_ShapeVariants(t *testing.T) {
	t.Parallel()

	shapes := []string{
		`[{"id":"42","name":"Acme","fqdn":"acme.com"}]`,
		`{"companies":[{"id":"42","name":"Acme","fqdn":"acme.com"}]}`,
		`{"data":[{"id":"42","name":"Acme","fqdn":"acme.com"}]}`,
		`{"results":[{"id":"42","name":"Acme","fqdn":"acme.com"}]}`,
	}

	for _, shape := range shapes {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/prospecting/company/search", r.URL.Path)
			_, _ = w.Write([]byte(shape))
		}))

		client := NewClient("test-key", WithBaseURL(srv.URL))
		got, err := client.CompanySearch(context.Background(), "acme.com")
		srv.Close()

		require.NoError(t, err, shape)
		require.Len(t, got, 1, shape)
		assert.Equal(t, "Acme", got[0].Name, shape)
	}
}

func TestContactSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prospecting/contact/search", r.URL.Path)

		var body struct {
			Filters map[string]any `json:"filters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"Acme"}, body.Filters["companyNames"])
		assert.Contains(t, body.Filters, "departments")
		assert.Contains(t, body.Filters, "seniorityLevels")
		assert.Equal(t, []any{"work_email"}, body.Filters["existingDataPoints"])

		_, _ = w.Write([]byte(`{"requestId":"req-1","contacts":[{"contactId":"c1"},{"contactId":"c2"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.ContactSearch(context.Background(), ContactSearchRequest{
		CompanyName:  "Acme",
		Departments:  []string{"Marketing", "Sales"},
		Seniorities:  []int{5, 6, 7},
		HasWorkEmail: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, []string{"c1", "c2"}, got.ContactIDs)
}

func TestContactSearch_BroadFilterOmitsNarrowing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Filters map[string]any `json:"filters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body.Filters, "departments")
		assert.NotContains(t, body.Filters, "seniorityLevels")
		_, _ = w.Write([]byte(`{"requestId":"req-2","contacts":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.ContactSearch(context.Background(), ContactSearchRequest{
		CompanyName:  "Acme",
		HasWorkEmail: true,
	})

	require.NoError(t, err)
	assert.Empty(t, got.ContactIDs)
}

func TestContactEnrich(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prospecting/contact/enrich", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "req-1", body["requestId"])
		assert.Equal(t, []any{"c1", "c2"}, body["contactIds"])

		_, _ = w.Write([]byte(`{"contacts":[
			{"contactId":"c1","isSuccess":true,"data":{"firstName":"Ana","lastName":"Silva","jobTitle":"CMO","emailAddresses":[{"email":"ana@acme.com"}]}},
			{"contactId":"c2","isSuccess":false,"data":{}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.ContactEnrich(context.Background(), "req-1", []string{"c1", "c2"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSuccess)
	assert.Equal(t, "ana@acme.com", got[0].Data.EmailAddresses[0].Email)
	assert.False(t, got[1].IsSuccess)
}
