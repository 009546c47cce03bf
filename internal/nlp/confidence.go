package nlp

import (
	"strings"

	"github.com/montlabs/mont-core/internal/model"
)

// scoreConfidence computes the additive confidence heuristic, clamped to
// [0,1]. Unknown intents always score zero.
func scoreConfidence(intent model.Intent, ents *model.Entities, ctx *model.Context, text string) float64 {
	if intent == model.IntentUnknown || text == "" {
		return 0
	}

	score := 0.3

	if keywordAnchorPresent(intent, text) {
		score += 0.1
	}

	score += entityBonus(intent, ents)

	if ctx.LastIntent == intent {
		score += 0.05
	}
	if ctx.HasHistory() {
		score += 0.02
	}

	words := len(strings.Fields(text))
	if words == 1 {
		score -= 0.15
	} else if words > 15 {
		score -= 0.05
	}

	if hasCurrencyMarker(text) {
		score += 0.05
	}
	if hasBilingualCue(text) {
		score += 0.05
	}

	return clamp01(score)
}

// entityBonus rewards the entities each intent actually needs.
func entityBonus(intent model.Intent, ents *model.Entities) float64 {
	bonus := 0.0

	switch intent {
	case model.IntentExpenseLog:
		if ents.HasAmount() {
			bonus += 0.4
		}
		if ents.HasCategory() && ents.Category != model.CategoryOthers {
			bonus += 0.2
		}
		if ents.Description != "" {
			bonus += 0.1
		}
		if ents.Merchant != "" {
			bonus += 0.1
		}

	case model.IntentBudgetUpdate:
		if ents.HasAmount() {
			bonus += 0.4
		}
		if ents.BudgetType != "" {
			bonus += 0.2
		}

	case model.IntentBudgetQuery, model.IntentCategoryQuery, model.IntentExpenseHistory:
		if ents.Period != "" {
			bonus += 0.2
		}
		if ents.Limit > 0 {
			bonus += 0.1
		}

	case model.IntentFinancialAdvice:
		if ents.Topic != "" {
			bonus += 0.2
		}

	case model.IntentSavingsGoal:
		if ents.HasAmount() {
			bonus += 0.4
		}
		if ents.Purpose != "" {
			bonus += 0.1
		}
		if ents.Timeline != "" {
			bonus += 0.1
		}

	case model.IntentDebugData, model.IntentHelp, model.IntentUnknown:
		// Nothing to reward.
	}

	return bonus
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
