package recovery

// Known error types. These names are part of the caller contract and match
// the values existing clients already send.
const (
	ErrTypeLowConfidence   = "nlp_low_confidence"
	ErrTypeMissingAmount   = "missing_amount"
	ErrTypeMissingCategory = "missing_category"
	ErrTypeInvalidAmount   = "invalid_amount"
	ErrTypeDBConnection    = "db_connection_error"
	ErrTypeUpstreamAPI     = "nvidia_api_error"
)

// Strategy is one error type's recovery plan: actions tried in order, then
// a fallback that is defined to always succeed.
type Strategy struct {
	Fallback string
	Actions  []string
	Priority int
}

// strategies is the static dispatch table, initialized once and never
// mutated.
var strategies = map[string]Strategy{
	ErrTypeLowConfidence: {
		Priority: 1,
		Actions:  []string{"clarify_intent", "show_examples"},
		Fallback: "generic_help",
	},
	ErrTypeMissingAmount: {
		Priority: 1,
		Actions:  []string{"local_parse"},
		Fallback: "prompt_amount",
	},
	ErrTypeMissingCategory: {
		Priority: 2,
		Actions:  []string{"category_from_context", "local_parse"},
		Fallback: "default_category",
	},
	ErrTypeInvalidAmount: {
		Priority: 2,
		Actions:  []string{"amount_examples"},
		Fallback: "prompt_amount",
	},
	ErrTypeDBConnection: {
		Priority: 3,
		Actions:  []string{"alert_degraded"},
		Fallback: "offline_mode",
	},
	ErrTypeUpstreamAPI: {
		Priority: 3,
		Actions:  []string{"local_parse"},
		Fallback: "basic_mode",
	},
}
