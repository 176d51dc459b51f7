package extract

import "strings"

// priorityPrefixes rank local parts for outreach. Affiliate/partnership
// inboxes first, then press/marketing, then localized "contact" synonyms,
// then generic catch-alls.
var priorityPrefixes = []string{
	"affiliate@",
	"partner@",
	"partnerships@",
	"marketing@",
	"press@",
	"kontakt@",  // German
	"contact@",  // English, French
	"contacto@", // Spanish
	"contato@",  // Portuguese
	"contatti@", // Italian
	"info@",
	"hello@",
	"office@",
	"team@",
}

// Select picks the primary address from valid candidates for a target
// domain. Domain-matching candidates beat everything else; within the
// remaining pool the priority prefix order decides; ties fall back to
// discovery order. Returns "" when candidates is empty.
func Select(domain string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	pool := candidates
	if matched := domainMatches(domain, candidates); len(matched) > 0 {
		pool = matched
	}

	for _, prefix := range priorityPrefixes {
		for _, c := range pool {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				return c
			}
		}
	}

	return pool[0]
}

// domainMatches filters candidates whose domain part relates to the target
// domain: exact, with or without www., or substring containment in either
// direction (covers co.uk-style variants and subdomains).
func domainMatches(domain string, candidates []string) []string {
	target := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if target == "" {
		return nil
	}

	var matched []string
	for _, c := range candidates {
		at := strings.IndexByte(c, '@')
		if at < 0 {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(c[at+1:]), "www.")
		if host == target || strings.Contains(host, target) || strings.Contains(target, host) {
			matched = append(matched, c)
		}
	}
	return matched
}
