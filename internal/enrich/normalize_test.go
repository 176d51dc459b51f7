package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://www.example.org/path?x=1", "example.org"},
		{"http://example.org", "example.org"},
		{"www.Example.org", "example.org"},
		{"EXAMPLE.ORG/about", "example.org"},
		{"example.org?ref=abc", "example.org"},
		{"  example.org  ", "example.org"},
		{"", ""},
		{"https://", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanDomain(tc.in), tc.in)
	}
}

func TestCleanDomain_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://www.example.org/path?x=1",
		"sub.domain.co.uk/a/b",
		"",
		"www.www.x.com",
	}
	for _, in := range inputs {
		once := CleanDomain(in)
		assert.Equal(t, once, CleanDomain(once), in)
	}
}

func TestParseName(t *testing.T) {
	t.Parallel()

	first, last := ParseName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = ParseName("Jane Alexandra van Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Alexandra van Doe", last)

	first, last = ParseName("Prince")
	assert.Equal(t, "Prince", first)
	assert.Equal(t, "", last)

	first, last = ParseName("  ")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestRequestNames_ExplicitOverridesSplit(t *testing.T) {
	t.Parallel()

	req := Request{PersonName: "Jane Doe", FirstName: "Janet", LastName: "Dough"}
	first, last := req.Names()
	assert.Equal(t, "Janet", first)
	assert.Equal(t, "Dough", last)

	req = Request{PersonName: "Jane Doe"}
	first, last = req.Names()
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)
}

func TestIsSocialDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSocialDomain("tiktok.com"))
	assert.True(t, IsSocialDomain("https://www.instagram.com/someone"))
	assert.True(t, IsSocialDomain("m.youtube.com"))
	assert.False(t, IsSocialDomain("example.org"))
	assert.False(t, IsSocialDomain("nottiktok.company.com"))
}
