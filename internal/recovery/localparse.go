package recovery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/montlabs/mont-core/internal/model"
)

// localParse is the dependency-free fallback extractor used when the full
// pipeline or an upstream classification service is unavailable. It is a
// deliberately tiny subset of the real extractor: two amount patterns and
// a constant-time keyword scan over a fixed list.

var (
	localAmountShorthandRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k\b`)
	localAmountRe          = regexp.MustCompile(`(?:₱|php)?\s*(\d[\d,]*(?:\.\d+)?)`)
)

// localCategoryKeywords is a fixed, bounded keyword list; the scan cost is
// constant regardless of input length because input is already capped.
var localCategoryKeywords = []struct {
	keyword  string
	category model.Category
}{
	{"food", model.CategoryFood},
	{"pagkain", model.CategoryFood},
	{"kain", model.CategoryFood},
	{"lunch", model.CategoryFood},
	{"jeep", model.CategoryTransportation},
	{"grab", model.CategoryTransportation},
	{"pamasahe", model.CategoryTransportation},
	{"fare", model.CategoryTransportation},
	{"game", model.CategoryEntertainment},
	{"movie", model.CategoryEntertainment},
	{"shopping", model.CategoryShopping},
	{"shopee", model.CategoryShopping},
	{"lazada", model.CategoryShopping},
	{"bill", model.CategoryUtilities},
	{"load", model.CategoryUtilities},
	{"kuryente", model.CategoryUtilities},
}

// localParseResult is what the minimal extractor could salvage.
type localParseResult struct {
	category    model.Category
	amount      float64
	hasAmount   bool
	hasCategory bool
}

// localParse extracts an amount and category with zero dependencies on the
// full pipeline.
func localParse(input string) localParseResult {
	text := strings.ToLower(input)
	var res localParseResult

	if m := localAmountShorthandRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			res.amount = v * 1000
			res.hasAmount = true
		}
	} else if m := localAmountRe.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			res.amount = v
			res.hasAmount = true
		}
	}

	for _, entry := range localCategoryKeywords {
		if strings.Contains(text, entry.keyword) {
			res.category = entry.category
			res.hasCategory = true
			break
		}
	}

	return res
}
