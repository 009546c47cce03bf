// Package chat wires the extractor, memory cache, recovery dispatcher,
// and responder into the per-turn flow the UI calls.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/montlabs/mont-core/internal/memory"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/nlp"
	"github.com/montlabs/mont-core/internal/recovery"
	"github.com/montlabs/mont-core/internal/respond"
)

// Engine runs one conversation turn end to end: extract, then either
// confirm and remember, or recover with guidance. It never returns an
// error; degraded collaborators always leave a usable reply.
type Engine struct {
	processor  *nlp.Processor
	cache      *memory.Cache
	dispatcher *recovery.Dispatcher
	responder  *respond.Responder
}

// NewEngine assembles the turn pipeline.
func NewEngine(processor *nlp.Processor, cache *memory.Cache, dispatcher *recovery.Dispatcher, responder *respond.Responder) *Engine {
	return &Engine{
		processor:  processor,
		cache:      cache,
		dispatcher: dispatcher,
		responder:  responder,
	}
}

// Turn processes one user message and returns the assistant's reply along
// with the raw extraction result for callers that want it.
func (e *Engine) Turn(ctx context.Context, userID, input string) (string, model.ExtractionResult) {
	conv := e.cache.SessionContext(ctx, userID)
	result := e.processor.Process(input, conv)

	e.cache.AddMessage(ctx, userID, "", model.Message{
		ID:        uuid.NewString(),
		Text:      input,
		IsBot:     false,
		Timestamp: time.Now(),
	})

	// Record the classified intent even for invalid turns: the
	// clarification flow depends on it so a bare follow-up like "150"
	// can resolve against the intent that just failed validation.
	if result.Intent != model.IntentUnknown {
		conv.LastIntent = result.Intent
	}

	var reply string
	if result.Validation.IsValid {
		reply = e.responder.Render(result)
	} else {
		errorType := nlp.ErrorTypeFor(result)
		recovered := e.dispatcher.HandleError(ctx, errorType, conv, input)
		reply = e.responder.RenderRecovery(recovered)
	}

	botMsg := model.Message{
		ID:        uuid.NewString(),
		Text:      reply,
		IsBot:     true,
		Timestamp: time.Now(),
	}
	if result.Entities.HasAmount() {
		botMsg.Data = map[string]float64{
			"amount":     *result.Entities.Amount,
			"confidence": result.Confidence,
		}
	}
	e.cache.AddMessage(ctx, userID, "", botMsg)

	return reply, result
}

// History returns the most recent messages for display.
func (e *Engine) History(ctx context.Context, userID string, limit int) []model.Message {
	return e.cache.GetOptimizedContext(ctx, userID, limit)
}
