package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactPaths_LanguageFirstThenDefaults(t *testing.T) {
	t.Parallel()

	got := contactPaths("de", []string{"/contact", "/about"})

	assert.Equal(t, []string{"/impressum", "/kontakt", "/ueber-uns", "/datenschutz", "/contact", "/about"}, got)
}

func TestContactPaths_Deduplicates(t *testing.T) {
	t.Parallel()

	// /contact appears in both the language list and the defaults.
	got := contactPaths("en", []string{"/contact", "/impressum"})

	assert.Equal(t, []string{"/contact", "/contact-us", "/about", "/about-us", "/impressum"}, got)
}

func TestContactPaths_UnknownLanguageUsesDefaults(t *testing.T) {
	t.Parallel()

	defaults := []string{"/contact", "/about"}
	assert.Equal(t, defaults, contactPaths("xx", defaults))
	assert.Equal(t, defaults, contactPaths("", defaults))
}

func TestContactPaths_SkipsEmptyEntries(t *testing.T) {
	t.Parallel()

	got := contactPaths("", []string{"", "/contact", ""})
	assert.Equal(t, []string{"/contact"}, got)
}
