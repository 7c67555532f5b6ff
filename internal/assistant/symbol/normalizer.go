// Package symbol maps user supplied tickers to exchange qualified symbols.
package symbol

import "strings"

// IDXSuffix is the Yahoo suffix of the Indonesia Stock Exchange.
const IDXSuffix = ".JK"

// idxPrefixes are the two-letter prefixes of 4-letter IDX tickers (banks,
// telcos, consumer goods and mining) that are not also common US tickers.
var idxPrefixes = map[string]struct{}{
	"BB": {}, // BBCA, BBRI, BBNI, BBTN
	"BM": {}, // BMRI
	"BR": {}, // BRIS, BRPT
	"TL": {}, // TLKM
	"UN": {}, // UNVR
	"IC": {}, // ICBP
	"GG": {}, // GGRM
	"HM": {}, // HMSP
}

// exchangeSuffixes are tried in order when a bare symbol misses on a provider.
var exchangeSuffixes = []string{
	IDXSuffix, ".L", ".TO", ".HK", ".AX", ".NS", ".BO", ".SI", ".KS", ".T", ".DE", ".PA",
}

// Normalize uppercases and trims raw and appends the IDX suffix to 4-letter
// tickers with a known IDX prefix. Symbols that already carry an exchange
// suffix and everything else are returned uppercased.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if strings.Contains(s, ".") {
		return s
	}
	if len(s) == 4 {
		if _, ok := idxPrefixes[s[:2]]; ok {
			return s + IDXSuffix
		}
	}
	return s
}

// ExpandFormats returns the lookup candidates for raw. The uppercased input is
// always first; a bare symbol is followed by its normalized form (when it
// differs) and one candidate per known exchange suffix.
func ExpandFormats(raw string) []string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	candidates := []string{s}
	if s == "" || strings.Contains(s, ".") {
		return candidates
	}

	seen := map[string]struct{}{s: {}}
	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		candidates = append(candidates, c)
	}
	add(Normalize(s))
	for _, suffix := range exchangeSuffixes {
		add(s + suffix)
	}
	return candidates
}

// Base strips the exchange suffix from a symbol.
func Base(sym string) string {
	if i := strings.Index(sym, "."); i > 0 {
		return sym[:i]
	}
	return sym
}
