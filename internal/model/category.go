package model

import "strings"

// Category is one of the six canonical spending categories.
type Category string

// Canonical categories. Every synonym, brand, or Filipino-language term
// normalizes into exactly one of these; anything unmapped becomes
// CategoryOthers.
const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryUtilities      Category = "utilities"
	CategoryOthers         Category = "others"
)

// AllCategories lists the canonical categories.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryOthers,
}

// categorySynonyms maps known synonyms, shorthand, and Filipino terms to
// canonical categories. Canonical names map to themselves so that
// NormalizeCategory is idempotent.
var categorySynonyms = map[string]Category{
	"food":           CategoryFood,
	"foods":          CategoryFood,
	"pagkain":        CategoryFood,
	"kain":           CategoryFood,
	"ulam":           CategoryFood,
	"groceries":      CategoryFood,
	"grocery":        CategoryFood,
	"merienda":       CategoryFood,
	"transportation": CategoryTransportation,
	"transport":      CategoryTransportation,
	"transpo":        CategoryTransportation,
	"pamasahe":       CategoryTransportation,
	"commute":        CategoryTransportation,
	"fare":           CategoryTransportation,
	"entertainment":  CategoryEntertainment,
	"libangan":       CategoryEntertainment,
	"games":          CategoryEntertainment,
	"gaming":         CategoryEntertainment,
	"laro":           CategoryEntertainment,
	"shopping":       CategoryShopping,
	"shop":           CategoryShopping,
	"damit":          CategoryShopping,
	"clothes":        CategoryShopping,
	"utilities":      CategoryUtilities,
	"utility":        CategoryUtilities,
	"bills":          CategoryUtilities,
	"bill":           CategoryUtilities,
	"kuryente":       CategoryUtilities,
	"tubig":          CategoryUtilities,
	"internet":       CategoryUtilities,
	"load":           CategoryUtilities,
	"others":         CategoryOthers,
	"other":          CategoryOthers,
	"iba":            CategoryOthers,
	"misc":           CategoryOthers,
}

// LookupCategory resolves a raw term through the canonicalization table.
// The second return reports whether the term is a known category word.
func LookupCategory(raw string) (Category, bool) {
	term := strings.ToLower(strings.TrimSpace(raw))
	cat, ok := categorySynonyms[term]
	return cat, ok
}

// NormalizeCategory canonicalizes a raw category term into one of the six
// categories. Unmapped terms become CategoryOthers. The function is
// idempotent: normalizing a canonical name returns it unchanged.
func NormalizeCategory(raw string) Category {
	if cat, ok := LookupCategory(raw); ok {
		return cat
	}
	return CategoryOthers
}

// Valid reports whether the category is one of the six canonical values.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
