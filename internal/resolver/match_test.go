package resolver

import (
	"strings"
	"testing"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Bitcoin", "bitcoin"},
		{"Render Token", "render-token"},
		{"The Graph", "the-graph"},
		{"USD Coin (USDC)", "usd-coin-usdc"},
		{"  Avalanche  ", "avalanche"},
		{"already-a-slug", "already-a-slug"},
		{"Multi___Underscore  Name", "multi-underscore-name"},
		{"--edge--", "edge"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeriveSlug(tt.name); got != tt.want {
			t.Errorf("DeriveSlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	inputs := []string{"Render Token", "USD Coin (USDC)", "The Graph"}
	for _, in := range inputs {
		once := DeriveSlug(in)
		if twice := DeriveSlug(once); twice != once {
			t.Errorf("DeriveSlug not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"HTTPS://Ethereum.org/", "ethereum.org"},
		{"http://www.ethereum.org", "ethereum.org"},
		{"ethereum.org", "ethereum.org"},
		{"https://rendernetwork.com///", "rendernetwork.com"},
		{"  https://Bitcoin.org/en/ ", "bitcoin.org/en"},
		{"www.example.com", "example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.url); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.binance.com:443/trade", "binance.com"},
		{"https://docs.ethereum.org/guide", "docs.ethereum.org"},
		{"https://bitcoin.org/en/", "bitcoin.org"},
		{"example.com", "example.com"},
	}
	for _, tt := range tests {
		if got := ExtractDomain(tt.url); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSimilarityTiers(t *testing.T) {
	tests := []struct {
		query     string
		entryName string
		entrySlug string
		wantScore float64
		wantType  string
	}{
		// Exact alphanumeric equality, punctuation ignored.
		{"Bitcoin", "Bitcoin", "bitcoin", 1.0, "exact"},
		{"usd coin", "USD Coin", "usd-coin", 1.0, "exact"},
		// Query contained in entry.
		{"Ether", "Ethereum", "ethereum", 0.9, "contains"},
		// Entry contained in query, entry name 5+ chars.
		{"Ethereum Foundation", "Ethereum", "ethereum", 0.85, "reverse_contains"},
		// Entry contained in query but too short: no match, no fallthrough.
		{"Dash Network Project", "Dash", "dash", 0, ""},
		// Word overlap on 3+ char tokens.
		{"render network", "Render Token", "render-token", 0.75, "word_overlap"},
		// No relation at all.
		{"Bitcoin", "Solana", "solana", 0, ""},
	}
	for _, tt := range tests {
		score, matchType := similarity(strings.ToLower(tt.query), alnum(tt.query), tt.entryName, tt.entrySlug)
		if score != tt.wantScore || matchType != tt.wantType {
			t.Errorf("similarity(%q vs %q) = (%v, %q), want (%v, %q)",
				tt.query, tt.entryName, score, matchType, tt.wantScore, tt.wantType)
		}
	}
}
