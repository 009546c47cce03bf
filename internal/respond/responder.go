// Package respond renders assistant replies from extraction results:
// confirmations for logged data, literacy tips for advice requests, and
// short motivational lines in the mascot's voice.
package respond

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/recovery"
)

// motivationalPhrases are appended to successful expense and savings
// turns.
var motivationalPhrases = []string{
	"Every peso tracked is a peso working for you!",
	"You're building great money habits!",
	"Small steps, big results!",
	"Keep it up, your future self says thanks!",
	"Galing! Tuloy lang ang pag-track!",
}

// literacyTips are served per advice topic.
var literacyTips = map[string][]string{
	"saving": {
		"Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings.",
		"Saving ₱50 daily adds up to ₱18,250 in a year.",
		"Pay yourself first: set aside savings before any spending.",
	},
	"budgeting": {
		"Track every expense for a week to see your spending patterns.",
		"Review and adjust your budget monthly based on actual spending.",
		"A budget isn't restriction, it's permission to spend guilt-free.",
	},
	"debt": {
		"Pay more than the minimum on your highest-interest debt first.",
		"Avoid new utang while paying down existing balances.",
	},
	"investing": {
		"Start early: compound interest rewards time more than amount.",
		"Only invest money you won't need for the next few years.",
	},
	"emergency_fund": {
		"Aim for 3-6 months of expenses in your emergency fund.",
		"Even ₱500 a month builds a real cushion over a year.",
	},
	"general": {
		"Knowledge is power: knowing where your money goes is step one.",
		"Set both short-term and long-term goals to stay motivated.",
		"Celebrate small wins; every ₱100 saved is progress.",
	},
}

// Responder turns extraction results into reply text.
type Responder struct {
	pick func(n int) int
}

// Option configures a Responder.
type Option func(*Responder)

// WithPicker overrides random selection, for tests.
func WithPicker(pick func(n int) int) Option {
	return func(r *Responder) { r.pick = pick }
}

// NewResponder creates a responder with random phrase selection.
func NewResponder(opts ...Option) *Responder {
	r := &Responder{pick: rand.Intn}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the reply for a valid extraction result. Invalid
// results should go through RenderRecovery instead.
func (r *Responder) Render(result model.ExtractionResult) string {
	ents := result.Entities

	switch result.Intent {
	case model.IntentExpenseLog:
		if !ents.HasAmount() {
			break
		}
		reply := fmt.Sprintf("Logged %s under %s", FormatAmount(*ents.Amount), ents.Category)
		if ents.Merchant != "" {
			reply += " at " + ents.Merchant
		}
		if ents.Date != nil {
			reply += " on " + ents.Date.Format("Jan 2")
		}
		return reply + ". " + r.choose(motivationalPhrases)

	case model.IntentBudgetUpdate:
		if !ents.HasAmount() {
			break
		}
		return fmt.Sprintf("Your %s budget is now %s for %s.",
			ents.BudgetType, FormatAmount(*ents.Amount), periodLabel(ents.Period))

	case model.IntentBudgetQuery:
		return fmt.Sprintf("Checking your %s budget for %s...",
			ents.BudgetType, periodLabel(ents.Period))

	case model.IntentCategoryQuery:
		if ents.HasCategory() {
			return fmt.Sprintf("Looking at your %s spending for %s...",
				ents.Category, periodLabel(ents.Period))
		}
		return fmt.Sprintf("Here's where your money went %s...", periodLabel(ents.Period))

	case model.IntentFinancialAdvice:
		tips := literacyTips[ents.Topic]
		if len(tips) == 0 {
			tips = literacyTips["general"]
		}
		return "Tip: " + r.choose(tips)

	case model.IntentExpenseHistory:
		return fmt.Sprintf("Here are your last %d expenses for %s.",
			ents.Limit, periodLabel(ents.Period))

	case model.IntentSavingsGoal:
		if !ents.HasAmount() {
			break
		}
		reply := fmt.Sprintf("Goal set: save %s", FormatAmount(*ents.Amount))
		if ents.Purpose != "" {
			reply += " for " + ents.Purpose
		}
		if ents.Timeline != "" {
			reply += " " + ents.Timeline
		}
		return reply + ". " + r.choose(motivationalPhrases)

	case model.IntentHelp:
		return "I'm MonT, your budgeting buddy! I can log expenses, manage budgets, show your history, and share saving tips."

	case model.IntentDebugData:
		return "Debug data coming up."

	case model.IntentUnknown:
		// Falls through to recovery in practice.
	}

	return "I'm here to help with your money. Tell me about an expense or ask for a tip!"
}

// RenderRecovery flattens a recovery response into display text.
func (r *Responder) RenderRecovery(resp recovery.Response) string {
	var b strings.Builder
	b.WriteString(resp.Title)
	b.WriteString("\n")
	b.WriteString(resp.Message)
	for _, ex := range resp.Examples {
		b.WriteString("\n  - ")
		b.WriteString(ex)
	}
	for _, opt := range resp.Options {
		b.WriteString("\n  * ")
		b.WriteString(opt)
	}
	return b.String()
}

// SavingsProgress formats a savings confirmation with running totals when
// the caller has them.
func (r *Responder) SavingsProgress(amount, total, target float64) string {
	msg := fmt.Sprintf("%s You've saved %s! Total: %s",
		r.choose(motivationalPhrases), FormatAmount(amount), FormatAmount(total))
	if target > 0 {
		msg += fmt.Sprintf(" (%.1f%% of your goal!)", total/target*100)
	}
	return msg
}

func (r *Responder) choose(pool []string) string {
	return pool[r.pick(len(pool))]
}

// FormatAmount renders a peso amount with thousands separators.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return "₱" + grouped.String() + "." + parts[1]
}

func periodLabel(period string) string {
	switch period {
	case "this_month":
		return "this month"
	case "this_week":
		return "this week"
	case "last_week":
		return "last week"
	case "last_month":
		return "last month"
	case "today":
		return "today"
	}
	return period
}
