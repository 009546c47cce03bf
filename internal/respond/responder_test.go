package respond

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/recovery"
)

func fixedResponder() *Responder {
	return NewResponder(WithPicker(func(int) int { return 0 }))
}

func amount(v float64) *float64 { return &v }

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "₱150.00"},
		{2500, "₱2,500.00"},
		{15000, "₱15,000.00"},
		{1234567.89, "₱1,234,567.89"},
		{0, "₱0.00"},
		{99.5, "₱99.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}

func TestRenderExpenseLog(t *testing.T) {
	r := fixedResponder()
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	reply := r.Render(model.ExtractionResult{
		Intent: model.IntentExpenseLog,
		Entities: model.Entities{
			Amount:   amount(150),
			Category: model.CategoryFood,
			Merchant: "jollibee",
			Date:     &date,
		},
	})

	assert.Contains(t, reply, "₱150.00")
	assert.Contains(t, reply, "food")
	assert.Contains(t, reply, "jollibee")
	assert.Contains(t, reply, "Jun 17")
}

func TestRenderBudgetUpdate(t *testing.T) {
	r := fixedResponder()

	reply := r.Render(model.ExtractionResult{
		Intent: model.IntentBudgetUpdate,
		Entities: model.Entities{
			Amount:     amount(15000),
			BudgetType: "total",
			Period:     "this_month",
		},
	})

	assert.Contains(t, reply, "₱15,000.00")
	assert.Contains(t, reply, "this month")
}

func TestRenderAdviceUsesTopic(t *testing.T) {
	r := fixedResponder()

	saving := r.Render(model.ExtractionResult{
		Intent:   model.IntentFinancialAdvice,
		Entities: model.Entities{Topic: "saving"},
	})
	assert.Contains(t, saving, "50/30/20")

	unknownTopic := r.Render(model.ExtractionResult{
		Intent:   model.IntentFinancialAdvice,
		Entities: model.Entities{Topic: "crypto"},
	})
	assert.NotEmpty(t, unknownTopic, "unmapped topics fall back to general tips")
}

func TestRenderSavingsGoal(t *testing.T) {
	r := fixedResponder()

	reply := r.Render(model.ExtractionResult{
		Intent: model.IntentSavingsGoal,
		Entities: model.Entities{
			Amount:   amount(5000),
			Purpose:  "new phone",
			Timeline: "3 months",
		},
	})

	assert.Contains(t, reply, "₱5,000.00")
	assert.Contains(t, reply, "new phone")
}

func TestRenderRecovery(t *testing.T) {
	r := fixedResponder()

	out := r.RenderRecovery(recovery.Response{
		Title:    "How much was it?",
		Message:  "Tell me the amount.",
		Examples: []string{"Spent ₱150 on lunch"},
		Options:  []string{"Log an expense"},
	})

	assert.Contains(t, out, "How much was it?")
	assert.Contains(t, out, "Tell me the amount.")
	assert.Contains(t, out, "Spent ₱150 on lunch")
	assert.Contains(t, out, "Log an expense")
}

func TestSavingsProgress(t *testing.T) {
	r := fixedResponder()

	withTarget := r.SavingsProgress(500, 2500, 10000)
	assert.Contains(t, withTarget, "₱500.00")
	assert.Contains(t, withTarget, "₱2,500.00")
	assert.Contains(t, withTarget, "25.0%")

	noTarget := r.SavingsProgress(500, 2500, 0)
	assert.NotContains(t, noTarget, "%")
}
