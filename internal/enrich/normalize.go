package enrich

import "strings"

// CleanDomain reduces a free-form domain string to a bare lowercase host:
// scheme and www. stripped, path and query truncated. It never fails; an
// empty input yields an empty string. Idempotent.
func CleanDomain(input string) string {
	d := strings.TrimSpace(input)
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, '?'); i >= 0 {
		d = d[:i]
	}
	return strings.ToLower(strings.TrimSpace(d))
}

// ParseName splits a full name into first and last. The first token is the
// first name; everything after it is the last name, which may be empty.
// Callers must treat an empty last name as insufficient for name search.
func ParseName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
