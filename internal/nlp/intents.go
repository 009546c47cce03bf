package nlp

import (
	"regexp"
	"strings"

	"github.com/montlabs/mont-core/internal/model"
)

// fuzzyThreshold is the minimum token-overlap score for a fuzzy intent
// match. Below it the input stays unknown.
const fuzzyThreshold = 0.3

// matcher pairs a compiled pattern with the literal keywords the pattern is
// anchored on. Keywords drive fuzzy matching and the lexical-anchor
// confidence bonus. Position in the matcher list is the priority.
type matcher struct {
	re       *regexp.Regexp
	keywords []string
}

// intentMatchers is one intent's ordered matcher list. Intents themselves
// are iterated in declaration order; the first matching pattern wins.
type intentMatchers struct {
	intent   model.Intent
	matchers []matcher
}

var intentTable = []intentMatchers{
	{
		intent: model.IntentExpenseLog,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:spent|spend|gastos|nagastos|gumastos|nagbayad|bayad|binili|bumili|bought|paid|purchased|nabili)\b`),
				keywords: []string{"spent", "gastos", "bought", "paid", "bili", "bayad"},
			},
			{
				// Anchored so "save ₱5,000 for a phone" still reads as a goal.
				re:       regexp.MustCompile(`^₱\s*[\d,]+(?:\.\d+)?\s+(?:sa|for|on)\b`),
				keywords: []string{"for"},
			},
			{
				re:       regexp.MustCompile(`\bworth\s+of\b`),
				keywords: []string{"worth"},
			},
		},
	},
	{
		intent: model.IntentBudgetUpdate,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:set|change|update|adjust|increase|decrease|baguhin|palitan|gawin)\b.*\bbudget\b`),
				keywords: []string{"set", "change", "update", "budget"},
			},
			{
				re:       regexp.MustCompile(`\bbudget\b.*\b(?:na lang|nalang|to)\s*₱`),
				keywords: []string{"budget"},
			},
		},
	},
	{
		intent: model.IntentBudgetQuery,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:how much|magkano|remaining|natitira)\b.*\bbudget\b`),
				keywords: []string{"magkano", "remaining", "budget"},
			},
			{
				re:       regexp.MustCompile(`\bbudget\b.*\b(?:left|remaining|natitira|balance)\b`),
				keywords: []string{"budget", "left", "balance"},
			},
			{
				re:       regexp.MustCompile(`\bcheck\s+(?:my\s+|ang\s+)?budget\b`),
				keywords: []string{"check", "budget"},
			},
		},
	},
	{
		intent: model.IntentCategoryQuery,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:category|categories|kategorya)\b`),
				keywords: []string{"category", "categories", "kategorya"},
			},
			{
				re:       regexp.MustCompile(`\b(?:where|saan)\b.*\b(?:money|pera)\b.*\b(?:go|going|napupunta)\b`),
				keywords: []string{"where", "money", "napupunta"},
			},
		},
	},
	{
		intent: model.IntentFinancialAdvice,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:advice|advise|tip|tips|payo)\b`),
				keywords: []string{"advice", "tips", "payo"},
			},
			{
				re:       regexp.MustCompile(`\bhow\s+(?:do|can)\s+i\s+(?:save|budget|invest)\b`),
				keywords: []string{"how", "save", "budget"},
			},
			{
				re:       regexp.MustCompile(`\bpaano\b.*\b(?:ipon|mag-?ipon|makatipid|tipid|umipon)\b`),
				keywords: []string{"paano", "ipon", "tipid"},
			},
		},
	},
	{
		intent: model.IntentExpenseHistory,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:history|transactions|spending history)\b`),
				keywords: []string{"history", "transactions"},
			},
			{
				re:       regexp.MustCompile(`\b(?:show|list|view|ipakita)\b.*\b(?:expenses|gastos|spending)\b`),
				keywords: []string{"show", "expenses", "gastos"},
			},
			{
				re:       regexp.MustCompile(`\bwhat\s+did\s+i\s+(?:spend|buy)\b`),
				keywords: []string{"what", "spend"},
			},
		},
	},
	{
		intent: model.IntentSavingsGoal,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:savings goal|save up|makaipon|mag-?ipon|ipon)\b`),
				keywords: []string{"savings", "goal", "ipon"},
			},
			{
				re:       regexp.MustCompile(`\b(?:save|saving|i-?save)\b.*\b(?:for|para)\b`),
				keywords: []string{"save", "for"},
			},
			{
				re:       regexp.MustCompile(`\b(?:goal|target)\b`),
				keywords: []string{"goal", "target"},
			},
		},
	},
	{
		intent: model.IntentDebugData,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:debug|dump|raw data|show data|diagnostics)\b`),
				keywords: []string{"debug", "dump", "data"},
			},
		},
	},
	{
		intent: model.IntentHelp,
		matchers: []matcher{
			{
				re:       regexp.MustCompile(`\b(?:help|tulong|commands|what can you do|ano ang magagawa)\b`),
				keywords: []string{"help", "tulong", "commands"},
			},
		},
	},
}

var (
	followUpRe = regexp.MustCompile(`^(?:yes|no|oo|opo|hindi|sige|ok|okay|yup|yep|nope|another|isa pa|same|pareho|ulit|din|rin)$`)

	bareNumberRe      = regexp.MustCompile(`^₱?\s*\d[\d,]*(?:\.\d+)?$`)
	bareRelativeDayRe = regexp.MustCompile(`^(?:today|yesterday|ngayon|kahapon|kanina)$`)
)

// classifyIntent runs the ordered matcher tables over normalized text.
// When nothing matches it first tries follow-up/clarification adoption of
// the session's last intent, then token-overlap fuzzy matching.
func classifyIntent(text string, ctx *model.Context) model.Intent {
	for _, im := range intentTable {
		for _, m := range im.matchers {
			if m.re.MatchString(text) {
				return im.intent
			}
		}
	}

	if ctx.LastIntent != "" && ctx.LastIntent != model.IntentUnknown && isElliptical(text) {
		return ctx.LastIntent
	}

	return fuzzyMatch(text)
}

// isElliptical reports whether the input looks like a follow-up or a bare
// clarification that only makes sense relative to the previous turn.
func isElliptical(text string) bool {
	if followUpRe.MatchString(text) {
		return true
	}
	if bareNumberRe.MatchString(text) || bareRelativeDayRe.MatchString(text) {
		return true
	}
	if _, ok := model.LookupCategory(text); ok {
		return true
	}
	return false
}

// fuzzyMatch scores every matcher's keyword set against the input tokens
// and returns the best intent above the threshold. The score is the count
// of shared tokens of at least three characters divided by the matcher's
// keyword count.
func fuzzyMatch(text string) model.Intent {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		if len([]rune(tok)) >= 3 {
			tokens[tok] = struct{}{}
		}
	}
	if len(tokens) == 0 {
		return model.IntentUnknown
	}

	best := model.IntentUnknown
	bestScore := 0.0

	for _, im := range intentTable {
		for _, m := range im.matchers {
			if len(m.keywords) == 0 {
				continue
			}
			shared := 0
			for _, kw := range m.keywords {
				if _, ok := tokens[kw]; ok {
					shared++
				}
			}
			score := float64(shared) / float64(len(m.keywords))
			if score > bestScore {
				bestScore = score
				best = im.intent
			}
		}
	}

	if bestScore > fuzzyThreshold {
		return best
	}
	return model.IntentUnknown
}

// keywordAnchorPresent reports whether any of the intent's matcher keywords
// appears literally in the text.
func keywordAnchorPresent(intent model.Intent, text string) bool {
	for _, im := range intentTable {
		if im.intent != intent {
			continue
		}
		for _, m := range im.matchers {
			for _, kw := range m.keywords {
				if strings.Contains(text, kw) {
					return true
				}
			}
		}
	}
	return false
}
