package nlp

import (
	"time"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
)

// Processor is the intent and entity extractor. It is stateless between
// calls; all per-session state lives in the model.Context the caller
// passes in. Construct with NewProcessor rather than sharing a package
// singleton.
type Processor struct {
	nowFn func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the time source, for tests.
func WithClock(nowFn func() time.Time) Option {
	return func(p *Processor) { p.nowFn = nowFn }
}

// NewProcessor creates a ready-to-use extractor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{nowFn: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full extraction pipeline over one user message.
// It never fails: malformed input yields an unknown/invalid result and any
// internal panic is converted to the same safe shape at this boundary.
func (p *Processor) Process(raw string, ctx *model.Context) (result model.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError(common.ErrUpstreamService, "extractor panicked, degrading to unknown",
				common.Fields{"panic": r})
			result = unusableResult("an internal error occurred, please try rephrasing")
		}
	}()

	if ctx == nil {
		ctx = &model.Context{}
	}

	text := Normalize(raw)
	if text == "" {
		return unusableResult("please type a message, like 'Spent ₱150 on lunch'")
	}

	updateContext(ctx, text)

	intent := classifyIntent(text, ctx)
	ents := extractEntities(intent, text, p.nowFn())
	contextUsed := applyContextCorrection(&ents, ctx, text)
	confidence := scoreConfidence(intent, &ents, ctx, text)
	validation := validate(intent, &ents, contextUsed)

	return model.ExtractionResult{
		Intent:     intent,
		Entities:   ents,
		Confidence: confidence,
		Validation: validation,
	}
}

// unusableResult is the safe default for empty or unprocessable input.
func unusableResult(suggestion string) model.ExtractionResult {
	return model.ExtractionResult{
		Intent:     model.IntentUnknown,
		Confidence: 0,
		Validation: model.ValidationResult{
			IsValid:     false,
			Errors:      []string{"no usable input"},
			Suggestions: []string{suggestion},
		},
	}
}

// ErrorTypeFor maps a failed extraction onto the dispatcher's error
// taxonomy. Valid results map to "".
func ErrorTypeFor(result model.ExtractionResult) string {
	if result.Validation.IsValid {
		return ""
	}
	for _, field := range result.Validation.MissingFields {
		switch field {
		case "amount":
			return "missing_amount"
		case "category":
			return "missing_category"
		}
	}
	if result.Intent == model.IntentUnknown {
		return "nlp_low_confidence"
	}
	return "nlp_low_confidence"
}
