package enrich

import "strings"

// socialDomains are profile hosts that never resolve to a useful business
// contact. B2B lookups and the scraper refuse them outright instead of
// burning a billed query or crawling a walled garden.
var socialDomains = []string{
	"tiktok.com",
	"instagram.com",
	"youtube.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"pinterest.com",
	"snapchat.com",
	"twitch.tv",
	"threads.net",
}

// IsSocialDomain reports whether a cleaned domain is (or is a subdomain of)
// a known social-media platform.
func IsSocialDomain(domain string) bool {
	d := CleanDomain(domain)
	for _, s := range socialDomains {
		if d == s || strings.HasSuffix(d, "."+s) {
			return true
		}
	}
	return false
}
