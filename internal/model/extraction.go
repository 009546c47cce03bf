package model

import "time"

// Entities holds the structured values pulled from one user message.
// Pointer and zero-value fields mean "absent": extraction never guesses,
// documented fallbacks are applied during validation only.
type Entities struct {
	Amount      *float64
	Date        *time.Time
	Category    Category
	Description string
	Merchant    string
	BudgetType  string
	Period      string
	Topic       string
	Timeline    string
	Purpose     string
	Limit       int
}

// HasAmount reports whether an amount was extracted.
func (e *Entities) HasAmount() bool { return e.Amount != nil }

// HasCategory reports whether a category was extracted.
func (e *Entities) HasCategory() bool { return e.Category != "" }

// ValidationResult records whether an extraction is complete enough to act
// on, and how it was patched up when it was not.
type ValidationResult struct {
	Errors           []string
	MissingFields    []string
	Suggestions      []string
	FallbacksApplied []string
	IsValid          bool
	ContextUsed      bool
}

// ExtractionResult is the full outcome of processing one user message.
type ExtractionResult struct {
	Entities   Entities
	Validation ValidationResult
	Intent     Intent
	Confidence float64
}
