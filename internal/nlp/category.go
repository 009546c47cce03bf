package nlp

import (
	"regexp"
	"strings"

	"github.com/montlabs/mont-core/internal/model"
)

// gamingKeywords are checked before everything else: they are the most
// specific signal and would otherwise be misread by the generic patterns
// ("ml" alone, for instance).
var gamingKeywords = []string{
	"mobile legends",
	"ml diamonds",
	"codm",
	"call of duty",
	"valorant",
	"genshin",
	"roblox",
	"dota",
	"gacha",
	"game credits",
	"gaming",
	"steam wallet",
}

// categoryPatterns are the per-category compiled pattern groups, evaluated
// in declaration order after the gaming list.
var categoryPatterns = []struct {
	re       *regexp.Regexp
	category model.Category
}{
	{regexp.MustCompile(`\b(?:food|pagkain|kain|kumain|lunch|dinner|breakfast|almusal|tanghalian|hapunan|merienda|snack|snacks|kape|coffee|milk tea|milktea|ulam|groceries|grocery)\b`), model.CategoryFood},
	{regexp.MustCompile(`\b(?:jeep|jeepney|bus|mrt|lrt|taxi|tricycle|fare|pamasahe|gas|gasolina|toll|parking|commute|byahe)\b`), model.CategoryTransportation},
	{regexp.MustCompile(`\b(?:movie|movies|sine|cinema|concert|videoke|karaoke|laro|games)\b`), model.CategoryEntertainment},
	{regexp.MustCompile(`\b(?:shopping|shopee haul|damit|clothes|shoes|sapatos|mall|ukay)\b`), model.CategoryShopping},
	{regexp.MustCompile(`\b(?:bill|bills|kuryente|electric|electricity|water|tubig|internet|wifi|load|data|rent|upa)\b`), model.CategoryUtilities},
}

// knownMerchants maps brand and location names to their category. Longer
// names are listed in merchantOrder first so multi-word brands win over
// substrings.
var knownMerchants = map[string]model.Category{
	"jollibee":    model.CategoryFood,
	"mcdo":        model.CategoryFood,
	"mcdonalds":   model.CategoryFood,
	"kfc":         model.CategoryFood,
	"chowking":    model.CategoryFood,
	"mang inasal": model.CategoryFood,
	"greenwich":   model.CategoryFood,
	"shakeys":     model.CategoryFood,
	"starbucks":   model.CategoryFood,
	"dunkin":      model.CategoryFood,
	"goldilocks":  model.CategoryFood,
	"red ribbon":  model.CategoryFood,
	"7-eleven":    model.CategoryFood,
	"grab":        model.CategoryTransportation,
	"angkas":      model.CategoryTransportation,
	"joyride":     model.CategoryTransportation,
	"petron":      model.CategoryTransportation,
	"shell":       model.CategoryTransportation,
	"caltex":      model.CategoryTransportation,
	"netflix":     model.CategoryEntertainment,
	"spotify":     model.CategoryEntertainment,
	"steam":       model.CategoryEntertainment,
	"shopee":      model.CategoryShopping,
	"lazada":      model.CategoryShopping,
	"uniqlo":      model.CategoryShopping,
	"sm mall":     model.CategoryShopping,
	"meralco":     model.CategoryUtilities,
	"maynilad":    model.CategoryUtilities,
	"pldt":        model.CategoryUtilities,
	"globe":       model.CategoryUtilities,
	"smart":       model.CategoryUtilities,
	"converge":    model.CategoryUtilities,
}

// merchantOrder fixes the lookup order for knownMerchants: multi-word
// brands first, then alphabetical, so matching is deterministic.
var merchantOrder = []string{
	"mang inasal",
	"red ribbon",
	"sm mall",
	"7-eleven",
	"angkas",
	"caltex",
	"chowking",
	"converge",
	"dunkin",
	"globe",
	"goldilocks",
	"grab",
	"greenwich",
	"jollibee",
	"joyride",
	"kfc",
	"lazada",
	"maynilad",
	"mcdo",
	"mcdonalds",
	"meralco",
	"netflix",
	"petron",
	"pldt",
	"shakeys",
	"shell",
	"shopee",
	"smart",
	"spotify",
	"starbucks",
	"steam",
	"uniqlo",
}

var prepositionCategoryRe = regexp.MustCompile(`\b(?:for|on|sa)\s+([a-z]+)`)

// extractCategory resolves a spending category through the layered
// fallback chain: gaming keywords, per-category patterns, known merchants,
// preposition-anchored phrases. It reports false when nothing matched;
// defaulting to others happens at validation time, never here.
func extractCategory(text string) (model.Category, bool) {
	for _, kw := range gamingKeywords {
		if strings.Contains(text, kw) {
			return model.CategoryEntertainment, true
		}
	}

	for _, cp := range categoryPatterns {
		if cp.re.MatchString(text) {
			return cp.category, true
		}
	}

	if brand := findMerchant(text); brand != "" {
		return knownMerchants[brand], true
	}

	for _, m := range prepositionCategoryRe.FindAllStringSubmatch(text, -1) {
		if cat, ok := model.LookupCategory(m[1]); ok {
			return cat, true
		}
	}

	return "", false
}

// findMerchant returns the first known brand appearing in the text, or "".
func findMerchant(text string) string {
	for _, brand := range merchantOrder {
		if containsWord(text, brand) {
			return brand
		}
	}
	return ""
}

// containsWord reports whether needle occurs in text on word boundaries.
func containsWord(text, needle string) bool {
	idx := strings.Index(text, needle)
	for idx >= 0 {
		beforeOK := idx == 0 || !isWordChar(text[idx-1])
		after := idx + len(needle)
		afterOK := after >= len(text) || !isWordChar(text[after])
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(text[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
