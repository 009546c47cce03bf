package nlp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montlabs/mont-core/internal/model"
)

func fixedClock() time.Time {
	// A Wednesday.
	return time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
}

func TestProcessBilingualExpense(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	result := p.Process("Gastos ko ₱150 sa pagkain sa Jollibee", &model.Context{})

	assert.Equal(t, model.IntentExpenseLog, result.Intent)
	require.True(t, result.Entities.HasAmount())
	assert.InDelta(t, 150, *result.Entities.Amount, 0.001)
	assert.Equal(t, model.CategoryFood, result.Entities.Category)
	assert.Equal(t, "jollibee", result.Entities.Merchant)
	assert.True(t, result.Validation.IsValid)
	assert.Empty(t, result.Validation.FallbacksApplied)
	assert.GreaterOrEqual(t, result.Confidence, 0.9)
}

func TestProcessBudgetUpdateAppliesFallbacks(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	result := p.Process("Set my budget to ₱15,000", &model.Context{})

	assert.Equal(t, model.IntentBudgetUpdate, result.Intent)
	require.True(t, result.Entities.HasAmount())
	assert.InDelta(t, 15000, *result.Entities.Amount, 0.001)
	assert.True(t, result.Validation.IsValid)
	assert.Equal(t, "total", result.Entities.BudgetType)
	assert.Equal(t, "this_month", result.Entities.Period)
	assert.Contains(t, result.Validation.FallbacksApplied, "budgetType=total")
	assert.Contains(t, result.Validation.FallbacksApplied, "period=this_month")
}

func TestProcessShorthandAmountFuzzyIntent(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	result := p.Process("2.5k for shopping", &model.Context{})

	assert.Equal(t, model.IntentExpenseLog, result.Intent)
	require.True(t, result.Entities.HasAmount())
	assert.InDelta(t, 2500, *result.Entities.Amount, 0.001)
	assert.Equal(t, model.CategoryShopping, result.Entities.Category)
	assert.True(t, result.Validation.IsValid)
}

func TestProcessMissingAmount(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	result := p.Process("I spent money", &model.Context{})

	assert.Equal(t, model.IntentExpenseLog, result.Intent)
	assert.False(t, result.Entities.HasAmount())
	assert.False(t, result.Validation.IsValid)
	assert.Equal(t, []string{"amount"}, result.Validation.MissingFields)
	assert.NotEmpty(t, result.Validation.Suggestions)
	assert.Equal(t, "missing_amount", ErrorTypeFor(result))
}

func TestProcessEmptyInput(t *testing.T) {
	p := NewProcessor()

	for _, input := range []string{"", "   ", "!!!"} {
		result := p.Process(input, &model.Context{})

		assert.Equal(t, model.IntentUnknown, result.Intent, "input %q", input)
		assert.Zero(t, result.Confidence, "input %q", input)
		assert.False(t, result.Validation.IsValid, "input %q", input)
		assert.NotEmpty(t, result.Validation.Suggestions, "input %q", input)
	}
}

func TestProcessNilContext(t *testing.T) {
	p := NewProcessor()

	result := p.Process("spent ₱50 on coffee", nil)

	assert.Equal(t, model.IntentExpenseLog, result.Intent)
	assert.True(t, result.Validation.IsValid)
}

func TestProcessUnknownInput(t *testing.T) {
	p := NewProcessor()

	result := p.Process("the weather is nice", &model.Context{})

	assert.Equal(t, model.IntentUnknown, result.Intent)
	assert.Zero(t, result.Confidence)
	assert.False(t, result.Validation.IsValid)
	assert.Equal(t, "nlp_low_confidence", ErrorTypeFor(result))
}

func TestProcessDateOnlyWithExplicitReference(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	withDate := p.Process("spent ₱100 on lunch yesterday", &model.Context{})
	require.NotNil(t, withDate.Entities.Date)
	assert.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), *withDate.Entities.Date)

	withoutDate := p.Process("spent ₱100 on lunch", &model.Context{})
	assert.Nil(t, withoutDate.Entities.Date, "absent date must stay absent, not default to today")
}

func TestProcessFollowUpAdoptsContext(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))
	ctx := &model.Context{}

	first := p.Process("Gastos ko ₱200 sa pagkain", ctx)
	require.True(t, first.Validation.IsValid)
	ctx.LastIntent = first.Intent

	second := p.Process("pareho", ctx)

	assert.Equal(t, model.IntentExpenseLog, second.Intent)
	require.True(t, second.Entities.HasAmount())
	assert.InDelta(t, 200, *second.Entities.Amount, 0.001)
	assert.Equal(t, model.CategoryFood, second.Entities.Category)
	assert.True(t, second.Validation.ContextUsed)
	assert.True(t, second.Validation.IsValid)
}

func TestProcessSavingsGoal(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))

	result := p.Process("I want to save ₱5,000 for a new phone in 3 months", &model.Context{})

	assert.Equal(t, model.IntentSavingsGoal, result.Intent)
	require.True(t, result.Entities.HasAmount())
	assert.InDelta(t, 5000, *result.Entities.Amount, 0.001)
	assert.Equal(t, "new phone", result.Entities.Purpose)
	assert.Equal(t, "3 months", result.Entities.Timeline)
	assert.True(t, result.Validation.IsValid)
}

func TestProcessSavingsGoalRequiresAmount(t *testing.T) {
	p := NewProcessor()

	result := p.Process("I want to save up for a vacation", &model.Context{})

	assert.Equal(t, model.IntentSavingsGoal, result.Intent)
	assert.False(t, result.Validation.IsValid)
	assert.Contains(t, result.Validation.MissingFields, "amount")
}

func TestProcessAdviceTopicFallback(t *testing.T) {
	p := NewProcessor()

	result := p.Process("give me some tips", &model.Context{})

	assert.Equal(t, model.IntentFinancialAdvice, result.Intent)
	assert.True(t, result.Validation.IsValid)
	assert.Equal(t, "general", result.Entities.Topic)
	assert.Contains(t, result.Validation.FallbacksApplied, "topic=general")
}

func TestProcessHistoryDefaults(t *testing.T) {
	p := NewProcessor()

	result := p.Process("show my spending history", &model.Context{})

	assert.Equal(t, model.IntentExpenseHistory, result.Intent)
	assert.True(t, result.Validation.IsValid)
	assert.Equal(t, 10, result.Entities.Limit)
	assert.Equal(t, "this_month", result.Entities.Period)
}

func TestProcessOversizedInputTruncated(t *testing.T) {
	p := NewProcessor()

	input := "spent ₱75 on snacks " + strings.Repeat("x", 2000)
	result := p.Process(input, &model.Context{})

	assert.Equal(t, model.IntentExpenseLog, result.Intent)
	require.True(t, result.Entities.HasAmount())
	assert.InDelta(t, 75, *result.Entities.Amount, 0.001)
}

func TestConfidenceAlwaysInBounds(t *testing.T) {
	p := NewProcessor(WithClock(fixedClock))
	ctx := &model.Context{}

	inputs := []string{
		"",
		"Gastos ko ₱150 sa pagkain sa Jollibee kahapon",
		"spent 2.5k at mang inasal with friends after work on a friday",
		"budget",
		"help",
		"asdf",
		strings.Repeat("gastos ₱100 ", 200),
	}
	for _, input := range inputs {
		result := p.Process(input, ctx)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, result.Confidence, 1.0, "input %q", input)
	}
}

func TestErrorTypeFor(t *testing.T) {
	tests := []struct {
		name   string
		result model.ExtractionResult
		want   string
	}{
		{
			name: "valid result maps to empty",
			result: model.ExtractionResult{
				Validation: model.ValidationResult{IsValid: true},
			},
			want: "",
		},
		{
			name: "missing amount",
			result: model.ExtractionResult{
				Intent:     model.IntentExpenseLog,
				Validation: model.ValidationResult{MissingFields: []string{"amount"}},
			},
			want: "missing_amount",
		},
		{
			name: "missing category",
			result: model.ExtractionResult{
				Intent:     model.IntentCategoryQuery,
				Validation: model.ValidationResult{MissingFields: []string{"category"}},
			},
			want: "missing_category",
		},
		{
			name: "unknown intent",
			result: model.ExtractionResult{
				Intent:     model.IntentUnknown,
				Validation: model.ValidationResult{Errors: []string{"could not understand"}},
			},
			want: "nlp_low_confidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeFor(tt.result))
		})
	}
}
