package nlp

import (
	"fmt"

	"github.com/montlabs/mont-core/internal/model"
)

// Default values applied during validation. Extraction itself never
// defaults; every fallback taken is recorded in FallbacksApplied so the
// caller can tell a stated value from a guessed one.
const (
	defaultPeriod     = "this_month"
	defaultBudgetType = "total"
	defaultTopic      = "general"
	defaultLimit      = 10
)

// validate runs the intent-specific completeness checks and applies the
// documented fallbacks. An expense date is deliberately never fabricated:
// absent means "now", and only the caller may interpret that.
func validate(intent model.Intent, ents *model.Entities, contextUsed bool) model.ValidationResult {
	v := model.ValidationResult{ContextUsed: contextUsed}

	fallback := func(name, value string) {
		v.FallbacksApplied = append(v.FallbacksApplied, fmt.Sprintf("%s=%s", name, value))
	}
	missing := func(field, errMsg, suggestion string) {
		v.Errors = append(v.Errors, errMsg)
		v.MissingFields = append(v.MissingFields, field)
		v.Suggestions = append(v.Suggestions, suggestion)
	}

	switch intent {
	case model.IntentExpenseLog:
		if !ents.HasAmount() {
			missing("amount", "amount is required to log an expense", "Try: 'Spent ₱150 on food'")
		}
		if !ents.HasCategory() {
			ents.Category = model.CategoryOthers
			fallback("category", string(model.CategoryOthers))
		}

	case model.IntentBudgetUpdate:
		if !ents.HasAmount() {
			missing("amount", "a budget amount is required", "Try: 'Set my budget to ₱5,000'")
		}
		if ents.BudgetType == "" {
			ents.BudgetType = defaultBudgetType
			fallback("budgetType", defaultBudgetType)
		}
		if ents.Period == "" {
			ents.Period = defaultPeriod
			fallback("period", defaultPeriod)
		}

	case model.IntentBudgetQuery:
		if ents.BudgetType == "" {
			ents.BudgetType = defaultBudgetType
			fallback("budgetType", defaultBudgetType)
		}
		if ents.Period == "" {
			ents.Period = defaultPeriod
			fallback("period", defaultPeriod)
		}

	case model.IntentCategoryQuery:
		if ents.Period == "" {
			ents.Period = defaultPeriod
			fallback("period", defaultPeriod)
		}

	case model.IntentFinancialAdvice:
		if ents.Topic == "" {
			ents.Topic = defaultTopic
			fallback("topic", defaultTopic)
		}

	case model.IntentExpenseHistory:
		if ents.Limit == 0 {
			ents.Limit = defaultLimit
			fallback("limit", fmt.Sprintf("%d", defaultLimit))
		}
		if ents.Period == "" {
			ents.Period = defaultPeriod
			fallback("period", defaultPeriod)
		}

	case model.IntentSavingsGoal:
		if !ents.HasAmount() {
			missing("amount", "a target amount is required for a savings goal", "Try: 'I want to save ₱5,000 for a new phone'")
		}

	case model.IntentDebugData, model.IntentHelp:
		// Always actionable.

	case model.IntentUnknown:
		v.Errors = append(v.Errors, "could not understand the message")
		v.Suggestions = append(v.Suggestions,
			"I can log expenses, manage budgets, show your history, or share saving tips")
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
