package extract

import "strings"

// blockedPrefixes are role/system local parts that are never a useful
// outreach contact.
var blockedPrefixes = []string{
	"abuse@",
	"hostmaster@",
	"postmaster@",
	"webmaster@",
	"noreply@",
	"no-reply@",
	"mailer-daemon@",
	"support@",
}

// blockedDomains are infrastructure or placeholder domains that show up in
// page source but never belong to the business itself.
var blockedDomains = []string{
	"sentry.io",
	"schema.org",
	"w3.org",
	"example.com",
	"test.com",
}

// imageSuffixes catch regex captures that ran into a filename adjacent to
// an @ inside CSS or JS blobs.
var imageSuffixes = []string{".png", ".jpg", ".svg", ".gif", ".webp"}

// Valid reports whether a candidate looks like a usable business email.
func Valid(email string) bool {
	e := strings.ToLower(strings.TrimSpace(email))

	if len(e) < 5 || len(e) > 100 {
		return false
	}
	at := strings.IndexByte(e, '@')
	if at < 1 {
		return false
	}
	if !strings.Contains(e[at:], ".") {
		return false
	}

	for _, p := range blockedPrefixes {
		if strings.HasPrefix(e, p) {
			return false
		}
	}
	for _, d := range blockedDomains {
		if strings.Contains(e[at+1:], d) {
			return false
		}
	}
	for _, s := range imageSuffixes {
		if strings.HasSuffix(e, s) {
			return false
		}
	}

	return true
}
