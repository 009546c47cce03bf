// Package nlp implements the intent and entity extractor for the budgeting
// assistant. The extractor is pure: it performs no I/O and converts any
// internal failure into a safe unknown result at its boundary.
package nlp

import (
	"regexp"
	"strings"
)

// MaxInputLength is the defensive bound on raw input. Longer messages are
// truncated, not rejected.
const MaxInputLength = 1000

// currencyMarker is the single marker all currency-word variants collapse
// into during normalization.
const currencyMarker = "₱"

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	currencyWordRe = regexp.MustCompile(`(?:\bphp\b|\bpesos\b|\bpeso\b|\bpiso\b)\.?`)
	disallowedRe   = regexp.MustCompile(`[^a-z0-9₱\s.,:/'-]`)
)

// contractions is the fixed set of colloquial contractions expanded before
// pattern matching.
var contractions = map[string]string{
	"i'm":    "i am",
	"don't":  "do not",
	"can't":  "cannot",
	"won't":  "will not",
	"didn't": "did not",
	"it's":   "it is",
	"what's": "what is",
	"how's":  "how is",
	"let's":  "let us",
	"i've":   "i have",
}

// Normalize lowercases, trims, and bounds raw input, expands contractions,
// collapses currency-word variants into the currency marker, and strips
// characters outside the safe allow-list. The result is what every
// downstream pattern matches against.
func Normalize(raw string) string {
	runes := []rune(raw)
	if len(runes) > MaxInputLength {
		runes = runes[:MaxInputLength]
	}

	text := strings.ToLower(strings.TrimSpace(string(runes)))

	for from, to := range contractions {
		text = strings.ReplaceAll(text, from, to)
	}

	text = currencyWordRe.ReplaceAllString(text, currencyMarker)
	text = disallowedRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// hasCurrencyMarker reports whether normalized text carries the currency
// marker.
func hasCurrencyMarker(text string) bool {
	return strings.Contains(text, currencyMarker)
}

// bilingualCues are code-switched Filipino tokens that signal the user is
// typing Taglish; their presence slightly raises confidence.
var bilingualCues = map[string]struct{}{
	"gastos":   {},
	"nagastos": {},
	"bili":     {},
	"bumili":   {},
	"binili":   {},
	"bayad":    {},
	"pera":     {},
	"ipon":     {},
	"magkano":  {},
	"kahapon":  {},
	"ngayon":   {},
	"kanina":   {},
	"pagkain":  {},
	"pamasahe": {},
	"pareho":   {},
	"libo":     {},
	"utang":    {},
	"sahod":    {},
	"tulong":   {},
}

// hasBilingualCue reports whether any recognized Filipino token appears in
// the normalized text.
func hasBilingualCue(text string) bool {
	for _, tok := range strings.Fields(text) {
		if _, ok := bilingualCues[tok]; ok {
			return true
		}
	}
	return false
}
