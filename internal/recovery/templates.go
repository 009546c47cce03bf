// Package recovery turns failed or ambiguous extractions into concrete,
// user-actionable guidance. A static strategy table maps error types to
// ordered recovery actions with a guaranteed fallback; the dispatcher
// itself can never fail.
package recovery

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// GuidanceTemplate is the static content behind one recovery action.
// Templates are immutable and loaded once at startup.
type GuidanceTemplate struct {
	Title    string   `yaml:"title"`
	Body     string   `yaml:"body"`
	Examples []string `yaml:"examples"`
	Options  []string `yaml:"options"`
}

// loadTemplates parses the embedded template table. It fails loudly at
// construction time rather than at dispatch time.
func loadTemplates() (map[string]GuidanceTemplate, error) {
	templates := make(map[string]GuidanceTemplate)
	if err := yaml.Unmarshal(templatesYAML, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse guidance templates: %w", err)
	}
	for _, required := range []string{"generic_help", "emergency", "prompt_amount", "default_category", "offline_mode", "basic_mode"} {
		if _, ok := templates[required]; !ok {
			return nil, fmt.Errorf("guidance template %q missing", required)
		}
	}
	return templates, nil
}
