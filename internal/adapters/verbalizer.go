package adapters

import (
	"context"
	"fmt"
	"strings"
)

// Verbalizer turns a step's decision into client-facing prose. The kernel
// calls it once per turn with the draft's template key and the fields the
// step handler collected; everything about phrasing, localization, and link
// generation lives behind this interface (spec's "Out of scope: rich
// verbalization / UI-specific link generation").
type Verbalizer interface {
	Render(ctx context.Context, templateKey string, fields map[string]string) (string, error)
}

// TemplateVerbalizer is a deterministic Verbalizer backed by Go text
// templates-style placeholder substitution ({{field}}), keyed by template
// name. It is the default used when no richer verbalization service is
// configured, and is stable enough to assert against in tests.
type TemplateVerbalizer struct {
	templates map[string]string
}

// NewTemplateVerbalizer builds a verbalizer from a fixed template set.
func NewTemplateVerbalizer(templates map[string]string) *TemplateVerbalizer {
	return &TemplateVerbalizer{templates: templates}
}

// DefaultTemplateVerbalizer seeds the common draft templates the step
// handlers reference.
func DefaultTemplateVerbalizer() *TemplateVerbalizer {
	return NewTemplateVerbalizer(map[string]string{
		"date_acknowledged":   "Got it, {{date}} confirmed. Checking room availability now.",
		"date_change_detour":  "Got it, updating date to {{date}} — re-checking rooms.",
		"room_options":        "Here are the available rooms for {{date}}: {{rooms}}.",
		"offer_sent":          "Here is your offer for {{date}} in {{room}}: {{summary}}. A deposit of {{deposit}} is due by {{due_date}}.",
		"site_visit_options":  "Here are the available site visit slots: {{slots}}.",
		"confirmation_thanks": "Thank you, your event on {{date}} is confirmed.",
	})
}

func (v *TemplateVerbalizer) Render(_ context.Context, templateKey string, fields map[string]string) (string, error) {
	tmpl, ok := v.templates[templateKey]
	if !ok {
		return "", fmt.Errorf("verbalizer: unknown template %q", templateKey)
	}
	out := tmpl
	for key, value := range fields {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out, nil
}
