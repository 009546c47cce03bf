package recovery

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/service"
)

// Response is the user-facing guidance produced for a failed turn. It is
// always renderable: every path through the dispatcher ends in a complete
// response.
type Response struct {
	ErrorType string
	Action    string
	Title     string
	Message   string
	Examples  []string
	Options   []string
	Recovered bool
}

// Dispatcher routes error types through their recovery strategies.
// Construct with NewDispatcher; the template table is loaded exactly once.
type Dispatcher struct {
	templates map[string]GuidanceTemplate
	notifier  service.Notifier
	limiter   *rate.Limiter
	log       *errorLog
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithNotifier wires an alert sink for degraded-mode events. Alerts are
// cooldown-gated: at most one per cooldown interval regardless of how many
// storage errors arrive.
func WithNotifier(n service.Notifier, cooldown time.Duration) Option {
	return func(d *Dispatcher) {
		d.notifier = n
		if cooldown <= 0 {
			cooldown = 5 * time.Minute
		}
		d.limiter = rate.NewLimiter(rate.Every(cooldown), 1)
	}
}

// NewDispatcher builds a dispatcher with the embedded guidance templates.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		templates: templates,
		log:       &errorLog{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// HandleError produces guidance for a failed or ambiguous turn. It tries
// the strategy's actions in order, falls back to the strategy's guaranteed
// default, handles unknown error types with a generic capability list, and
// converts any internal panic into a fixed emergency response. This method
// can never fail.
func (d *Dispatcher) HandleError(ctx context.Context, errorType string, conv *model.Context, input string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError(fmt.Errorf("recovery dispatch panicked: %v", r),
				"emergency recovery engaged", common.Fields{"error_type": errorType})
			resp = d.render(errorType, "emergency", false)
		}
	}()

	if conv == nil {
		conv = &model.Context{}
	}

	strategy, known := strategies[errorType]
	if !known {
		resp = d.render(errorType, "generic_help", false)
		d.record(errorType, input, resp.Action)
		return resp
	}

	for _, action := range strategy.Actions {
		if r, ok := d.runAction(ctx, action, errorType, conv, input); ok {
			d.record(errorType, input, action)
			return r
		}
	}

	resp = d.render(errorType, strategy.Fallback, false)
	d.record(errorType, input, strategy.Fallback)
	return resp
}

// ErrorLog returns a copy of the recent recovery events, newest last.
func (d *Dispatcher) ErrorLog() []ErrorEntry {
	return d.log.snapshot()
}

// runAction executes one named recovery action. The boolean reports
// whether the action could render a complete response; false moves the
// chain to the next action.
func (d *Dispatcher) runAction(ctx context.Context, action, errorType string, conv *model.Context, input string) (Response, bool) {
	switch action {
	case "clarify_intent":
		if input == "" {
			return Response{}, false
		}
		return d.render(errorType, "clarify_intent", true), true

	case "show_examples":
		return d.render(errorType, "show_examples", true), true

	case "local_parse":
		return d.runLocalParse(errorType, input)

	case "category_from_context":
		if conv.LastCategory == "" {
			return Response{}, false
		}
		resp := d.render(errorType, "suggest_category", true)
		resp.Message = fmt.Sprintf("Last time this was %s. Should I use %s again?",
			conv.LastCategory, conv.LastCategory)
		return resp, true

	case "amount_examples":
		return d.render(errorType, "amount_examples", true), true

	case "alert_degraded":
		d.alertDegraded(ctx, errorType)
		return d.render(errorType, "offline_mode", true), true

	default:
		// Static template actions: prompt_amount, default_category,
		// offline_mode, basic_mode, generic_help.
		tmpl, ok := d.templates[action]
		if !ok {
			return Response{}, false
		}
		return Response{
			ErrorType: errorType,
			Action:    action,
			Title:     tmpl.Title,
			Message:   tmpl.Body,
			Examples:  tmpl.Examples,
			Options:   tmpl.Options,
			Recovered: true,
		}, true
	}
}

// runLocalParse uses the minimal extractor to salvage what it can from the
// raw input. It only succeeds when it finds the entity the error is about.
func (d *Dispatcher) runLocalParse(errorType, input string) (Response, bool) {
	parsed := localParse(input)

	switch errorType {
	case ErrTypeMissingAmount:
		if !parsed.hasAmount {
			return Response{}, false
		}
		resp := d.render(errorType, "local_parse", true)
		resp.Message = fmt.Sprintf("Did you mean ₱%.2f? Reply 'yes' to log it.", parsed.amount)
		return resp, true

	case ErrTypeMissingCategory:
		if !parsed.hasCategory {
			return Response{}, false
		}
		resp := d.render(errorType, "local_parse", true)
		resp.Message = fmt.Sprintf("This looks like %s. Reply 'yes' to use that category.", parsed.category)
		return resp, true

	case ErrTypeUpstreamAPI:
		if !parsed.hasAmount && !parsed.hasCategory {
			return Response{}, false
		}
		resp := d.render(errorType, "local_parse", true)
		switch {
		case parsed.hasAmount && parsed.hasCategory:
			resp.Message = fmt.Sprintf("I read that as ₱%.2f under %s. Reply 'yes' to log it.", parsed.amount, parsed.category)
		case parsed.hasAmount:
			resp.Message = fmt.Sprintf("I read an amount of ₱%.2f. Which category is it for?", parsed.amount)
		default:
			resp.Message = fmt.Sprintf("This looks like %s. How much was it?", parsed.category)
		}
		return resp, true
	}

	return Response{}, false
}

// alertDegraded emits a degraded-mode alert, gated by the cooldown limiter
// so repeated storage failures do not spam the sink.
func (d *Dispatcher) alertDegraded(ctx context.Context, errorType string) {
	if d.notifier == nil || d.limiter == nil {
		return
	}
	if !d.limiter.Allow() {
		return
	}
	d.notifier.Notify(ctx, "degraded_mode", "storage unavailable, chat degraded to offline mode",
		map[string]any{"error_type": errorType})
}

// render builds a response from a named template. Missing templates fall
// through to the emergency content so rendering itself can never fail.
func (d *Dispatcher) render(errorType, templateName string, recovered bool) Response {
	tmpl, ok := d.templates[templateName]
	if !ok {
		tmpl = d.templates["emergency"]
		templateName = "emergency"
	}
	return Response{
		ErrorType: errorType,
		Action:    templateName,
		Title:     tmpl.Title,
		Message:   tmpl.Body,
		Examples:  tmpl.Examples,
		Options:   tmpl.Options,
		Recovered: recovered,
	}
}

func (d *Dispatcher) record(errorType, input, action string) {
	d.log.append(ErrorEntry{
		Timestamp: time.Now(),
		ErrorType: errorType,
		Input:     input,
		Action:    action,
	})
}
