package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/montlabs/mont-core/internal/model"
)

// descriptionPatterns are tried in order; the first accepted span wins.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:para sa|for)\s+([a-z][a-z0-9 ]{1,40})`),
	regexp.MustCompile(`\b(?:bumili ng|bumili|binili|bought)\s+([a-z][a-z0-9 ]{1,40})`),
	regexp.MustCompile(`\b(?:at|sa)\s+([a-z][a-z0-9 ]{1,40})`),
	regexp.MustCompile(`\b(?:on|ng)\s+([a-z][a-z0-9 ]{1,40})`),
	regexp.MustCompile(`₱\s*[\d,]+(?:\.\d+)?\s+(?:for|sa)\s+([a-z][a-z0-9 ]{1,40})`),
}

// descriptionStopWords are leading action verbs and particles stripped from
// a matched description span.
var descriptionStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "my": {}, "some": {},
	"mga": {}, "ng": {}, "ang": {}, "yung": {},
	"buying": {}, "getting": {}, "paying": {},
}

// extractDescription finds a human-readable description of the expense.
// A span is rejected when it is just a category word, starts with a digit,
// or still carries a currency token. When no span survives but a merchant
// was found, the merchant name doubles as the description.
func extractDescription(text, merchant string) string {
	for _, re := range descriptionPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if span := cleanDescription(m[1]); span != "" {
			return span
		}
	}
	return merchant
}

// cleanDescription trims a raw span down to its useful core, returning ""
// when nothing usable remains.
func cleanDescription(span string) string {
	// Cut at the next phrase boundary so trailing clauses do not leak in.
	for _, sep := range []string{" sa ", " at ", " for ", " on ", " in ", " by ", " kahapon", " yesterday", " today", " ngayon"} {
		if idx := strings.Index(span, sep); idx > 0 {
			span = span[:idx]
		}
	}

	words := strings.Fields(span)
	for len(words) > 0 {
		if _, stop := descriptionStopWords[words[0]]; !stop {
			break
		}
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}

	span = strings.Join(words, " ")
	if span[0] >= '0' && span[0] <= '9' {
		return ""
	}
	if strings.Contains(span, currencyMarker) {
		return ""
	}
	if _, isCategory := model.LookupCategory(span); isCategory {
		return ""
	}
	return span
}

var merchantPhraseRe = regexp.MustCompile(`\b(?:at|sa)\s+([a-z]+(?:\s+[a-z]+)?)\b`)

// extractMerchant looks the text up against the known brand list first,
// then falls back to an "at/sa <words>" phrase.
func extractMerchant(text string) string {
	if brand := findMerchant(text); brand != "" {
		return brand
	}

	for _, m := range merchantPhraseRe.FindAllStringSubmatch(text, -1) {
		candidate := m[1]
		first := strings.Fields(candidate)[0]
		if _, isCategory := model.LookupCategory(first); isCategory {
			continue
		}
		if _, stop := descriptionStopWords[first]; stop {
			continue
		}
		return candidate
	}
	return ""
}

var (
	yesterdayRe = regexp.MustCompile(`\b(?:yesterday|kahapon)\b`)
	todayRe     = regexp.MustCompile(`\b(?:today|ngayon|kanina)\b`)
	weekdayRe   = regexp.MustCompile(`\b(?:last|noong|nung)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday|lunes|martes|miyerkules|huwebes|biyernes|sabado|linggo)\b`)
	numericMDRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
)

var weekdayNames = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
	"lunes":  time.Monday, "martes": time.Tuesday, "miyerkules": time.Wednesday,
	"huwebes": time.Thursday, "biyernes": time.Friday, "sabado": time.Saturday,
	"linggo": time.Sunday,
}

// extractDate returns a calendar date only when the input carries an
// explicit temporal reference. Absence means "use the current timestamp";
// it is never silently replaced with today's date.
func extractDate(text string, now time.Time) *time.Time {
	day := func(t time.Time) *time.Time {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return &d
	}

	if yesterdayRe.MatchString(text) {
		return day(now.AddDate(0, 0, -1))
	}
	if todayRe.MatchString(text) {
		return day(now)
	}
	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdayNames[m[1]]
		back := (int(now.Weekday()) - int(target) + 7) % 7
		if back == 0 {
			back = 7
		}
		return day(now.AddDate(0, 0, -back))
	}
	if m := numericMDRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		dayNum, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && dayNum >= 1 && dayNum <= 31 {
			d := time.Date(now.Year(), time.Month(month), dayNum, 0, 0, 0, 0, now.Location())
			return &d
		}
	}
	return nil
}

// extractPeriod maps temporal phrases to a reporting period. No default is
// applied here; validation fills in this_month when needed.
func extractPeriod(text string) string {
	switch {
	case strings.Contains(text, "last month") || strings.Contains(text, "nakaraang buwan"):
		return "last_month"
	case strings.Contains(text, "last week") || strings.Contains(text, "nakaraang linggo"):
		return "last_week"
	case strings.Contains(text, "week") || strings.Contains(text, "linggong"):
		return "this_week"
	case strings.Contains(text, "month") || strings.Contains(text, "buwan"):
		return "this_month"
	case todayRe.MatchString(text):
		return "today"
	}
	return ""
}

var (
	categoryBudgetRe = regexp.MustCompile(`\b([a-z]+)\s+budget\b`)
	budgetForRe      = regexp.MustCompile(`\bbudget\s+(?:for|sa|ng)\s+([a-z]+)`)
)

// extractBudgetType identifies whether the user means the overall budget or
// a per-category one.
func extractBudgetType(text string) string {
	if m := categoryBudgetRe.FindStringSubmatch(text); m != nil {
		if cat, ok := model.LookupCategory(m[1]); ok {
			return string(cat)
		}
		if m[1] == "total" || m[1] == "overall" || m[1] == "monthly" {
			return "total"
		}
	}
	if m := budgetForRe.FindStringSubmatch(text); m != nil {
		if cat, ok := model.LookupCategory(m[1]); ok {
			return string(cat)
		}
	}
	return ""
}

// extractTopic maps advice requests onto a coarse topic.
func extractTopic(text string) string {
	switch {
	case strings.Contains(text, "emergency"):
		return "emergency_fund"
	case strings.Contains(text, "invest") || strings.Contains(text, "stocks"):
		return "investing"
	case strings.Contains(text, "debt") || strings.Contains(text, "utang") || strings.Contains(text, "loan"):
		return "debt"
	case strings.Contains(text, "budget"):
		return "budgeting"
	case strings.Contains(text, "save") || strings.Contains(text, "saving") || strings.Contains(text, "ipon") || strings.Contains(text, "tipid"):
		return "saving"
	}
	return ""
}

var limitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:last|latest|recent)\s+(\d{1,3})\b`),
	regexp.MustCompile(`\b(\d{1,3})\s+(?:transactions|expenses|entries|gastos)\b`),
}

// extractLimit pulls a result-count limit for history queries; 0 means
// absent.
func extractLimit(text string) int {
	for _, re := range limitPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

var (
	timelineDurationRe = regexp.MustCompile(`\b(?:in|within)\s+(\d+\s+(?:days?|weeks?|months?|years?|araw|linggo|buwan|taon))\b`)
	timelineMonthRe    = regexp.MustCompile(`\bby\s+(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	purposeRe          = regexp.MustCompile(`\b(?:for|para sa)\s+([a-z][a-z ]{2,30})`)
)

// extractTimeline captures a savings-goal deadline phrase, if any.
func extractTimeline(text string) string {
	if m := timelineDurationRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := timelineMonthRe.FindStringSubmatch(text); m != nil {
		return "by " + m[1]
	}
	return ""
}

// extractPurpose captures what the user is saving for.
func extractPurpose(text string) string {
	if m := purposeRe.FindStringSubmatch(text); m != nil {
		return cleanDescription(m[1])
	}
	return ""
}

// extractEntities runs the intent-specific extraction tables. Extraction
// never applies defaults; absent stays absent until validation.
func extractEntities(intent model.Intent, text string, now time.Time) model.Entities {
	var ents model.Entities

	switch intent {
	case model.IntentExpenseLog:
		if amount, ok := extractAmount(text); ok {
			ents.Amount = &amount
		}
		if cat, ok := extractCategory(text); ok {
			ents.Category = cat
		}
		ents.Merchant = extractMerchant(text)
		ents.Description = extractDescription(text, ents.Merchant)
		ents.Date = extractDate(text, now)

	case model.IntentBudgetUpdate:
		if amount, ok := extractAmount(text); ok {
			ents.Amount = &amount
		}
		ents.BudgetType = extractBudgetType(text)
		ents.Period = extractPeriod(text)

	case model.IntentBudgetQuery:
		ents.BudgetType = extractBudgetType(text)
		ents.Period = extractPeriod(text)

	case model.IntentCategoryQuery:
		if cat, ok := extractCategory(text); ok {
			ents.Category = cat
		}
		ents.Period = extractPeriod(text)

	case model.IntentFinancialAdvice:
		ents.Topic = extractTopic(text)

	case model.IntentExpenseHistory:
		ents.Limit = extractLimit(text)
		ents.Period = extractPeriod(text)
		if cat, ok := extractCategory(text); ok {
			ents.Category = cat
		}

	case model.IntentSavingsGoal:
		if amount, ok := extractAmount(text); ok {
			ents.Amount = &amount
		}
		ents.Purpose = extractPurpose(text)
		ents.Timeline = extractTimeline(text)

	case model.IntentDebugData, model.IntentHelp, model.IntentUnknown:
		// No entities for these intents.
	}

	return ents
}
