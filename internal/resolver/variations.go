package resolver

import (
	"strings"
	"unicode"
)

// symbolRebrands maps symbols to their known rebrand or merger targets.
// RNDR became RENDER, MATIC became POL, the Terra collapse split LUNA into
// LUNC and LUNA2, and the ASI alliance absorbed FET, AGIX, and OCEAN.
var symbolRebrands = map[string][]string{
	"RNDR":  {"RENDER"},
	"GRT":   {"GRAPH"},
	"FET":   {"FETCH", "ASI"},
	"AGIX":  {"ASI"},
	"OCEAN": {"ASI"},
	"LUNA":  {"LUNC", "LUNA2"},
	"UST":   {"USTC"},
	"MATIC": {"POL"},
}

// genericSuffixes are project-name suffix words commonly folded into or
// dropped from tickers.
var genericSuffixes = []string{"TOKEN", "COIN", "PROTOCOL", "NETWORK", "FINANCE", "SWAP", "DAO"}

// SymbolVariations generates ticker variants worth trying when the exact
// symbol finds nothing. Rules are evaluated independently and appended in a
// fixed order, earlier entries first; duplicates are not removed here.
func SymbolVariations(symbol string) []string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	var variations []string

	// Known rebrands and merges.
	variations = append(variations, symbolRebrands[sym]...)

	// Strip generic suffixes, e.g. BTCTOKEN -> BTC.
	for _, suffix := range genericSuffixes {
		if strings.HasSuffix(sym, suffix) && len(sym) > len(suffix) {
			variations = append(variations, strings.TrimSuffix(sym, suffix))
		}
	}

	// Short symbols get the generic suffixes appended, e.g. SOL -> SOLTOKEN.
	if len(sym) <= 4 {
		for _, suffix := range []string{"TOKEN", "COIN"} {
			variations = append(variations, sym+suffix)
		}
	}

	// Drop trailing digits, e.g. USDT2 -> USDT.
	if sym != "" && unicode.IsDigit(rune(sym[len(sym)-1])) {
		variations = append(variations, strings.TrimRight(sym, "0123456789"))
	}

	// RNDR -> RENDER pattern: expand a trailing R.
	if len(sym) >= 3 && strings.HasSuffix(sym, "R") {
		variations = append(variations, sym[:len(sym)-1]+"ER")
	}

	// Possible network pattern: a trailing N may abbreviate "...NET".
	if len(sym) >= 3 && strings.HasSuffix(sym, "N") {
		variations = append(variations, sym+"ET")
	}

	return variations
}
