// Package model defines the core domain models used throughout the application.
package model

// Intent is the coarse-grained action a user wants from the assistant.
type Intent string

// Intent constants, in classification priority order.
const (
	IntentExpenseLog      Intent = "expense_log"
	IntentBudgetUpdate    Intent = "budget_update"
	IntentBudgetQuery     Intent = "budget_query"
	IntentCategoryQuery   Intent = "category_query"
	IntentFinancialAdvice Intent = "financial_advice"
	IntentExpenseHistory  Intent = "expense_history"
	IntentSavingsGoal     Intent = "savings_goal"
	IntentDebugData       Intent = "debug_data"
	IntentHelp            Intent = "help"
	IntentUnknown         Intent = "unknown"
)

// AllIntents lists every classifiable intent in priority order.
// IntentUnknown is deliberately excluded; it is the absence of a match.
var AllIntents = []Intent{
	IntentExpenseLog,
	IntentBudgetUpdate,
	IntentBudgetQuery,
	IntentCategoryQuery,
	IntentFinancialAdvice,
	IntentExpenseHistory,
	IntentSavingsGoal,
	IntentDebugData,
	IntentHelp,
}

// Valid reports whether the intent is one of the declared constants.
func (i Intent) Valid() bool {
	if i == IntentUnknown {
		return true
	}
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}
