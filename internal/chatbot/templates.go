package chatbot

import "strings"

// Marker is the substitution slot inside a template body. Each template body
// contains it exactly once.
const Marker = "{input}"

// Template is a reusable prompt pattern with one substitution slot.
type Template struct {
	Name        string
	Description string
	Body        string
}

// Render substitutes the marker occurrence with input, verbatim and without
// escaping. When the body carries no marker the body is returned unchanged
// and input is not inserted anywhere; callers must not assume insertion
// happened.
func (t Template) Render(input string) string {
	return strings.Replace(t.Body, Marker, input, 1)
}

// templates is the process-wide registry. Built once at startup and never
// mutated afterwards, so it needs no synchronization. Order is significant
// for display.
var templates = []Template{
	{
		Name:        "code",
		Description: "Ask for code implementing a task",
		Body:        "Write code that accomplishes the following task. Include a brief explanation.\n\nTask: {input}",
	},
	{
		Name:        "explain",
		Description: "Ask for a plain-language explanation",
		Body:        "Explain the following in simple terms, as if to a newcomer:\n\n{input}",
	},
	{
		Name:        "summarize",
		Description: "Ask for a short summary",
		Body:        "Summarize the following text in a few sentences, keeping the key points:\n\n{input}",
	},
	{
		Name:        "brainstorm",
		Description: "Ask for a list of ideas",
		Body:        "Brainstorm a list of ideas about the following topic. Aim for variety over polish.\n\nTopic: {input}",
	},
	{
		Name:        "review",
		Description: "Ask for a critical review",
		Body:        "Review the following critically. Point out strengths, weaknesses and concrete improvements:\n\n{input}",
	},
}

// LookupTemplate finds a template by exact, case-sensitive name. A missing
// name is a normal result, not an error.
func LookupTemplate(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Templates returns the registry in registration order. The returned slice
// is a copy.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}
