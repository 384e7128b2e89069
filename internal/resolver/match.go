package resolver

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]`)
	nonSlugRe   = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRunRe  = regexp.MustCompile(`[\s_]+`)
	hyphenRunRe = regexp.MustCompile(`-+`)
	wordTokenRe = regexp.MustCompile(`\w{3,}`)
)

// alnum reduces a string to its lowercase alphanumeric characters.
func alnum(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
}

// DeriveSlug converts a display name to the catalog slug format:
// lowercase, hyphen-separated, alphanumeric. Idempotent.
func DeriveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugRe.ReplaceAllString(slug, "")
	slug = spaceRunRe.ReplaceAllString(slug, "-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NormalizeURL canonicalizes a URL for comparison: lowercase, no trailing
// slashes, no scheme, no www prefix.
func NormalizeURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimRight(u, "/")
	for _, prefix := range []string{"https://", "http://", "www."} {
		u = strings.TrimPrefix(u, prefix)
	}
	return u
}

// ExtractDomain returns the bare host of a URL, without path or port.
func ExtractDomain(u string) string {
	domain := NormalizeURL(u)
	domain, _, _ = strings.Cut(domain, "/")
	domain, _, _ = strings.Cut(domain, ":")
	return domain
}

// wordTokens returns the set of word tokens of 3+ characters in s.
func wordTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range wordTokenRe.FindAllString(s, -1) {
		tokens[w] = true
	}
	return tokens
}

// similarity scores how closely a catalog entry's name and slug match the
// query name, in [0,1]. Matching tiers, checked in priority order:
//
//	1.0  exact            alphanumeric forms equal
//	0.9  contains         query contained in name/slug
//	0.85 reverse_contains name/slug (5+ chars) contained in query
//	0.6+ word_overlap     3+ char word tokens overlap
//
// Returns the score and the tier label, or 0 and "" below threshold.
func similarity(queryLower, queryClean, entryName, entrySlug string) (float64, string) {
	nameLower := strings.ToLower(entryName)
	nameClean := alnum(entryName)
	slugClean := alnum(entrySlug)

	switch {
	case queryClean == nameClean || queryClean == slugClean:
		return 1.0, "exact"
	case strings.Contains(nameClean, queryClean) || strings.Contains(slugClean, queryClean):
		return 0.9, "contains"
	case strings.Contains(queryClean, nameClean) || strings.Contains(queryClean, slugClean):
		// Length floor avoids short false positives; a too-short containment
		// scores zero rather than falling through to word overlap.
		if len(nameClean) >= 5 {
			return 0.85, "reverse_contains"
		}
		return 0, ""
	}

	queryWords := wordTokens(queryLower)
	nameWords := wordTokens(nameLower)
	if len(queryWords) == 0 || len(nameWords) == 0 {
		return 0, ""
	}
	overlap := 0
	for w := range queryWords {
		if nameWords[w] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, ""
	}
	larger := len(queryWords)
	if len(nameWords) > larger {
		larger = len(nameWords)
	}
	return 0.6 + float64(overlap)/float64(larger)*0.3, "word_overlap"
}
