// Package extract pulls candidate email addresses out of raw page text
// using several independent techniques, filters them for plausibility, and
// picks a primary address by contact priority.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	mailtoRe = regexp.MustCompile(`(?i)href\s*=\s*["']mailto:([^"'?]+)`)
	jsonLDRe = regexp.MustCompile(`(?is)<script[^>]+type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)
	authorRe = regexp.MustCompile(`(?is)<meta[^>]+name\s*=\s*["']author["'][^>]+content\s*=\s*["']([^"']+)["']`)
	relMeRe  = regexp.MustCompile(`(?is)<link[^>]+rel\s*=\s*["']me["'][^>]+href\s*=\s*["']mailto:([^"'?]+)["']`)
)

// deobfuscations rewrites anti-spam idioms back to literal address form.
// Order matters: bracketed forms first so " at " inside "[at]" variants is
// not half-rewritten.
var deobfuscations = [][2]string{
	{"[at]", "@"}, {"(at)", "@"}, {" at ", "@"},
	{"[dot]", "."}, {"(dot)", "."}, {" dot ", "."},
	{"&#64;", "@"}, {"&#046;", "."}, {"&#46;", "."},
	{"&commat;", "@"}, {"&period;", "."},
}

// Deobfuscate rewrites common email obfuscation idioms to literal form.
func Deobfuscate(text string) string {
	for _, d := range deobfuscations {
		text = strings.ReplaceAll(text, d[0], d[1])
	}
	return text
}

// Emails runs every extraction technique over the body and returns the
// valid candidates, deduplicated, in discovery order.
func Emails(body string) []string {
	var found []string
	found = append(found, emailRe.FindAllString(Deobfuscate(body), -1)...)
	found = append(found, StructuredEmails(body)...)
	return dedupeValid(found)
}

// StructuredEmails extracts only from structured markup: mailto links,
// JSON-LD blocks, and author/rel=me meta tags. Used on homepages, where a
// raw pattern match over scripts and CSS is too noisy.
func StructuredEmails(body string) []string {
	var found []string

	for _, m := range mailtoRe.FindAllStringSubmatch(body, -1) {
		found = append(found, m[1])
	}

	for _, m := range jsonLDRe.FindAllStringSubmatch(body, -1) {
		found = append(found, jsonLDEmails(m[1])...)
	}

	for _, m := range authorRe.FindAllStringSubmatch(body, -1) {
		found = append(found, emailRe.FindAllString(m[1], -1)...)
	}
	for _, m := range relMeRe.FindAllStringSubmatch(body, -1) {
		found = append(found, m[1])
	}

	return dedupeValid(found)
}

// jsonLDEmails parses one JSON-LD block and walks it for email-ish keys.
// Malformed blocks are skipped, never fatal.
func jsonLDEmails(block string) []string {
	var data any
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return nil
	}
	var found []string
	walkJSON(data, &found)
	return found
}

// walkJSON recursively collects string values under any key containing
// "email", stripping a mailto: prefix when present.
func walkJSON(node any, out *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if s, ok := val.(string); ok && strings.Contains(strings.ToLower(key), "email") {
				*out = append(*out, strings.TrimPrefix(s, "mailto:"))
				continue
			}
			walkJSON(val, out)
		}
	case []any:
		for _, item := range v {
			walkJSON(item, out)
		}
	}
}

// dedupeValid filters candidates through Valid and drops case-insensitive
// duplicates, preserving discovery order.
func dedupeValid(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		if !Valid(c) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
