package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern is one step of the amount precedence chain. The first
// pattern that matches wins; later patterns are never consulted.
type amountPattern struct {
	re         *regexp.Regexp
	multiplier float64
}

// Precedence: shorthand suffixes first (so "2.5k" is not read as 2.5),
// then explicit currency forms, then phrasing, then a bare decimal as the
// last resort.
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*k\b`), 1000},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*m\b`), 1000000},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:thousand|libo)\b`), 1000},
	{regexp.MustCompile(`₱\s*(\d[\d,]*(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`\b(\d[\d,]*(?:\.\d+)?)\s*₱`), 1},
	{regexp.MustCompile(`\b(?:worth|value)\s+(?:of\s+)?₱?\s*(\d[\d,]*(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`\b(\d[\d,]*(?:\.\d+)?)\b`), 1},
}

// numberWords is the closed vocabulary for the word-number fallback.
// Summation is additive and each word counts at most once; there is no
// multiplicative compounding ("two hundred" sums to 102).
var numberWords = map[string]float64{
	"one":      1,
	"two":      2,
	"three":    3,
	"four":     4,
	"five":     5,
	"six":      6,
	"seven":    7,
	"eight":    8,
	"nine":     9,
	"ten":      10,
	"twenty":   20,
	"thirty":   30,
	"forty":    40,
	"fifty":    50,
	"hundred":  100,
	"thousand": 1000,
	"isa":      1,
	"dalawa":   2,
	"tatlo":    3,
	"apat":     4,
	"lima":     5,
	"sampu":    10,
	"daan":     100,
	"libo":     1000,
}

// extractAmount pulls a non-negative decimal amount from normalized text.
// Thousands separators are removed before parsing. Returns false when no
// pattern and no number word matches.
func extractAmount(text string) (float64, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return value * p.multiplier, true
	}

	return sumNumberWords(text)
}

// sumNumberWords is the final fallback: add up every vocabulary word that
// appears, counting each at most once.
func sumNumberWords(text string) (float64, bool) {
	seen := make(map[string]struct{})
	total := 0.0
	for _, tok := range strings.Fields(text) {
		value, ok := numberWords[tok]
		if !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		total += value
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}
