package nlp

import (
	"regexp"

	"github.com/montlabs/mont-core/internal/model"
)

// updateContext records the current input into short-term memory before
// classification runs. Category and amount are captured opportunistically
// so a later elliptical turn ("same", "ganun din") can resolve against
// them; they do not feed the current turn's own output except through the
// correction step.
func updateContext(ctx *model.Context, text string) {
	ctx.PushMention(text)

	if amount, ok := extractAmount(text); ok {
		ctx.LastAmount = &amount
	}
	if cat, ok := extractCategory(text); ok {
		ctx.LastCategory = cat
	}
}

var (
	sameAmountCueRe   = regexp.MustCompile(`\b(?:same|pareho|din|rin|ganun din)\b`)
	sameCategoryCueRe = regexp.MustCompile(`\b(?:same|another|isa pa|pareho|ulit)\b`)
)

// applyContextCorrection is the single place extracted entities may be
// overwritten after extraction: an absent amount or category is adopted
// from the previous turn when the input carries a follow-up cue. Returns
// whether context was consulted.
func applyContextCorrection(ents *model.Entities, ctx *model.Context, text string) bool {
	used := false

	if !ents.HasAmount() && ctx.LastAmount != nil && sameAmountCueRe.MatchString(text) {
		amount := *ctx.LastAmount
		ents.Amount = &amount
		used = true
	}

	if !ents.HasCategory() && ctx.LastCategory != "" && sameCategoryCueRe.MatchString(text) {
		ents.Category = ctx.LastCategory
		used = true
	}

	return used
}
