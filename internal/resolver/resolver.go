// Package resolver implements the progressive cryptocurrency search: a
// sequence of catalog lookup strategies of increasing fuzziness, run until
// one yields candidates, optionally verified against a claimed homepage URL.
//
// Strategy failures never abort a search; each is downgraded to a search-log
// line and the pipeline falls through to the next strategy.
package resolver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/YimingYAN/coinmarketcap-mcp/internal/cmc"
)

// Catalog is the slice of the catalog client the resolver consumes.
// *cmc.Client satisfies it; tests substitute fakes.
type Catalog interface {
	CryptocurrencyMap(ctx context.Context, q cmc.MapQuery) ([]cmc.MapEntry, error)
	CryptocurrencyInfo(ctx context.Context, q cmc.InfoQuery) (map[string][]cmc.InfoEntry, error)
}

// Confidence is a coarse trust label attached to a candidate, used for
// sorting and display only.
type Confidence string

// Confidence tiers, strongest first.
const (
	ConfidenceVerified Confidence = "verified"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
)

// sortRank orders tiers for sorting; unknown tiers sort with low.
func (c Confidence) sortRank() int {
	switch c {
	case ConfidenceVerified:
		return 0
	case ConfidenceHigh:
		return 1
	case ConfidenceMedium:
		return 2
	default:
		return 3
	}
}

// MatchMethod identifies which strategy produced a candidate.
type MatchMethod string

// Match methods, in pipeline order.
const (
	MatchExactSymbol     MatchMethod = "exact_symbol"
	MatchSymbolVariation MatchMethod = "symbol_variation"
	MatchSlug            MatchMethod = "slug"
	MatchFuzzyName       MatchMethod = "fuzzy_name"
)

// Homepage verification outcomes.
const (
	HomepageExact  = "exact"
	HomepageDomain = "domain"
	HomepageNone   = "none"
)

// Candidate is a catalog entry annotated with how it was found and how much
// to trust it. Candidates live only for the duration of one Search call.
type Candidate struct {
	cmc.MapEntry

	Method        MatchMethod `json:"match_method"`
	Confidence    Confidence  `json:"confidence"`
	MatchedQuery  string      `json:"matched_query,omitempty"`
	OriginalQuery string      `json:"original_query,omitempty"`
	Similarity    *float64    `json:"similarity,omitempty"`
	MatchType     string      `json:"match_type,omitempty"`
	HomepageMatch string      `json:"homepage_match,omitempty"`
	WebsiteURLs   []string    `json:"website_urls,omitempty"`
	Warning       string      `json:"warning,omitempty"`
}

// Query echoes the search input.
type Query struct {
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// SearchResult is the outcome of one progressive search.
type SearchResult struct {
	Query      Query        `json:"query"`
	Found      bool         `json:"found"`
	MatchCount int          `json:"match_count"`
	BestMatch  *Candidate   `json:"best_match"`
	AllMatches []*Candidate `json:"all_matches"`
	SearchLog  []string     `json:"search_log"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// Resolver runs progressive searches against an injected catalog.
type Resolver struct {
	catalog Catalog
}

// New creates a resolver backed by the given catalog.
func New(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// searchState is the accumulated state threaded through the strategy
// pipeline.
type searchState struct {
	name       string
	symbol     string // uppercased, trimmed
	homepage   string
	candidates []*Candidate
}

// strategyOutcome is the typed result of one strategy: new candidates plus
// search-log lines. Failures are already folded into the log; they never
// carry out of a strategy.
type strategyOutcome struct {
	candidates []*Candidate
	logs       []string
}

const (
	maxMatches     = 10
	fuzzyPageLimit = 5000
	fuzzyKeep      = 5
	fuzzyThreshold = 0.6
	// rankSentinel sorts unranked entries after every ranked one.
	rankSentinel = 99999

	fuzzyWarning = "Fuzzy match - verify with homepage or manual check"
)

// Search resolves a free-form name and/or symbol to catalog candidates.
// At least one of name and symbol is required; homepage is optional and only
// used to verify and upgrade candidates found by the other strategies.
func (r *Resolver) Search(ctx context.Context, name, symbol, homepage string) (*SearchResult, error) {
	if name == "" && symbol == "" {
		return nil, &cmc.MissingParamError{Op: "search", Params: []string{"name", "symbol"}}
	}

	state := &searchState{
		name:     name,
		symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
		homepage: homepage,
	}

	strategies := []struct {
		gate func(*searchState) bool
		run  func(context.Context, *searchState) strategyOutcome
	}{
		// Exact symbol always runs when a symbol is given; everything after
		// it only fires while no candidate exists yet.
		{func(s *searchState) bool { return symbol != "" }, r.exactSymbol},
		{func(s *searchState) bool { return symbol != "" && len(s.candidates) == 0 }, r.symbolVariations},
		{func(s *searchState) bool { return name != "" && len(s.candidates) == 0 }, r.slugFromName},
		{func(s *searchState) bool { return name != "" && len(s.candidates) == 0 }, r.fuzzyName},
	}

	var searchLog []string
	for _, strat := range strategies {
		if !strat.gate(state) {
			continue
		}
		outcome := strat.run(ctx, state)
		state.candidates = append(state.candidates, outcome.candidates...)
		searchLog = append(searchLog, outcome.logs...)
	}

	// Homepage verification runs regardless of which strategy produced the
	// candidates, but needs at least one of them.
	if homepage != "" && len(state.candidates) > 0 {
		r.verifyHomepage(ctx, state.candidates, homepage)
		searchLog = append(searchLog, fmt.Sprintf("homepage_verification: checked %d candidates", len(state.candidates)))
	}

	candidates := state.candidates
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence.sortRank() < candidates[j].Confidence.sortRank()
	})

	var warnings []string
	if len(candidates) > 0 && candidates[0].Confidence == ConfidenceLow {
		warnings = append(warnings, "Best match is low confidence - provide homepage URL for verification")
	}
	if len(candidates) > 1 && homepage == "" {
		warnings = append(warnings, fmt.Sprintf("Multiple matches (%d) - provide homepage URL to disambiguate", len(candidates)))
	}

	result := &SearchResult{
		Query:      Query{Name: name, Symbol: symbol, Homepage: homepage},
		Found:      len(candidates) > 0,
		MatchCount: len(candidates),
		AllMatches: candidates,
		SearchLog:  searchLog,
		Warnings:   warnings,
	}
	if len(candidates) > maxMatches {
		result.AllMatches = candidates[:maxMatches]
	}
	if len(candidates) > 0 {
		result.BestMatch = candidates[0]
	}
	return result, nil
}

// exactSymbol looks the normalized symbol up directly in the ID map.
func (r *Resolver) exactSymbol(ctx context.Context, s *searchState) strategyOutcome {
	entries, err := r.catalog.CryptocurrencyMap(ctx, cmc.MapQuery{Symbol: s.symbol})
	if err != nil {
		return strategyOutcome{logs: []string{fmt.Sprintf("exact_symbol(%s): failed - %v", s.symbol, err)}}
	}
	if len(entries) == 0 {
		return strategyOutcome{}
	}

	out := strategyOutcome{logs: []string{fmt.Sprintf("exact_symbol(%s): %d found", s.symbol, len(entries))}}
	for _, entry := range entries {
		out.candidates = append(out.candidates, &Candidate{
			MapEntry:     entry,
			Method:       MatchExactSymbol,
			Confidence:   ConfidenceHigh,
			MatchedQuery: s.symbol,
		})
	}
	return out
}

// symbolVariations tries generated ticker variants in order, stopping at the
// first variant that returns any entries.
func (r *Resolver) symbolVariations(ctx context.Context, s *searchState) strategyOutcome {
	var out strategyOutcome
	for _, variant := range SymbolVariations(s.symbol) {
		if variant == s.symbol {
			continue // already tried by the exact strategy
		}
		entries, err := r.catalog.CryptocurrencyMap(ctx, cmc.MapQuery{Symbol: variant})
		if err != nil {
			out.logs = append(out.logs, fmt.Sprintf("symbol_variation(%s): no match", variant))
			continue
		}
		if len(entries) == 0 {
			continue
		}
		for _, entry := range entries {
			out.candidates = append(out.candidates, &Candidate{
				MapEntry:      entry,
				Method:        MatchSymbolVariation,
				Confidence:    ConfidenceMedium,
				MatchedQuery:  variant,
				OriginalQuery: s.symbol,
			})
		}
		out.logs = append(out.logs, fmt.Sprintf("symbol_variation(%s): %d found", variant, len(entries)))
		break
	}
	return out
}

// slugFromName derives a slug from the name and queries metadata by slug.
// The response maps id -> entry or id -> list of entries; both shapes are
// flattened.
func (r *Resolver) slugFromName(ctx context.Context, s *searchState) strategyOutcome {
	slug := DeriveSlug(s.name)
	data, err := r.catalog.CryptocurrencyInfo(ctx, cmc.InfoQuery{Slug: slug})
	if err != nil {
		return strategyOutcome{logs: []string{fmt.Sprintf("slug(%s): no match - %v", slug, err)}}
	}
	if len(data) == 0 {
		return strategyOutcome{}
	}

	var out strategyOutcome
	for _, key := range sortedKeys(data) {
		for _, info := range data[key] {
			out.candidates = append(out.candidates, &Candidate{
				MapEntry: cmc.MapEntry{
					ID:     info.ID,
					Name:   info.Name,
					Symbol: info.Symbol,
					Slug:   info.Slug,
				},
				Method:       MatchSlug,
				Confidence:   ConfidenceMedium,
				MatchedQuery: slug,
			})
		}
	}
	out.logs = []string{fmt.Sprintf("slug(%s): %d found", slug, len(out.candidates))}
	return out
}

// fuzzyName scores the name against a large catalog page and keeps the
// closest matches. Transport errors yield an empty set, not a failure.
func (r *Resolver) fuzzyName(ctx context.Context, s *searchState) strategyOutcome {
	matches := r.fuzzyMatch(ctx, s.name)
	if len(matches) == 0 {
		return strategyOutcome{logs: []string{fmt.Sprintf("fuzzy_name(%s): no match", s.name)}}
	}

	out := strategyOutcome{logs: []string{fmt.Sprintf("fuzzy_name(%s): %d found", s.name, len(matches))}}
	out.candidates = append(out.candidates, matches...)
	return out
}

// fuzzyMatch fetches up to fuzzyPageLimit catalog entries and ranks them by
// name similarity: score descending, then catalog rank ascending with
// unranked entries last. Returns at most fuzzyKeep candidates.
func (r *Resolver) fuzzyMatch(ctx context.Context, name string) []*Candidate {
	queryLower := strings.ToLower(strings.TrimSpace(name))
	queryClean := alnum(name)

	entries, err := r.catalog.CryptocurrencyMap(ctx, cmc.MapQuery{Limit: fuzzyPageLimit})
	if err != nil {
		return nil
	}

	var matches []*Candidate
	for _, entry := range entries {
		score, matchType := similarity(queryLower, queryClean, entry.Name, entry.Slug)
		if score < fuzzyThreshold {
			continue
		}
		rounded := math.Round(score*100) / 100
		matches = append(matches, &Candidate{
			MapEntry:   entry,
			Method:     MatchFuzzyName,
			Confidence: ConfidenceLow,
			Similarity: &rounded,
			MatchType:  matchType,
			Warning:    fuzzyWarning,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if *matches[i].Similarity != *matches[j].Similarity {
			return *matches[i].Similarity > *matches[j].Similarity
		}
		return entryRank(matches[i]) < entryRank(matches[j])
	})
	if len(matches) > fuzzyKeep {
		matches = matches[:fuzzyKeep]
	}
	return matches
}

// verifyHomepage batch-fetches metadata for the first candidates and
// compares declared website URLs against the claimed homepage. An exact
// normalized-URL match upgrades to verified and clears the warning; a bare
// domain match promotes low to medium. Lookup failures leave candidates
// untouched.
func (r *Resolver) verifyHomepage(ctx context.Context, candidates []*Candidate, homepage string) {
	normalized := NormalizeURL(homepage)
	domain := ExtractDomain(homepage)

	checked := candidates
	if len(checked) > maxMatches {
		checked = checked[:maxMatches]
	}
	ids := make([]string, 0, len(checked))
	for _, c := range checked {
		ids = append(ids, strconv.Itoa(c.ID))
	}

	info, err := r.catalog.CryptocurrencyInfo(ctx, cmc.InfoQuery{ID: strings.Join(ids, ",")})
	if err != nil {
		return
	}

	for _, c := range candidates {
		entries := info[strconv.Itoa(c.ID)]
		if len(entries) == 0 {
			continue
		}
		urls := entries[0].Websites()

		exact := false
		domainMatch := false
		for _, u := range urls {
			if NormalizeURL(u) == normalized {
				exact = true
			}
			if ExtractDomain(u) == domain {
				domainMatch = true
			}
		}

		switch {
		case exact:
			c.Confidence = ConfidenceVerified
			c.HomepageMatch = HomepageExact
			c.WebsiteURLs = urls
			c.Warning = ""
		case domainMatch:
			if c.Confidence == ConfidenceLow {
				c.Confidence = ConfidenceMedium
			}
			c.HomepageMatch = HomepageDomain
			c.WebsiteURLs = urls
		default:
			c.HomepageMatch = HomepageNone
			c.WebsiteURLs = urls
		}
	}
}

// entryRank returns the candidate's catalog rank, or the sentinel when the
// entry is unranked.
func entryRank(c *Candidate) int {
	if c.Rank != nil {
		return *c.Rank
	}
	return rankSentinel
}

// sortedKeys orders response map keys numerically where possible so the
// flattening order is deterministic.
func sortedKeys(m map[string][]cmc.InfoEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
