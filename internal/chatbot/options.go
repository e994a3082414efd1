package chatbot

import "fmt"

// Options is the effective configuration of one chat session. It is always
// the result of layering DefaultOptions, an optional preset fragment, and
// caller overrides, later layers winning per field.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Preamble    string
	Streaming   bool
	Template    string // active template name, empty when none
}

// Overrides carries optional per-field updates for Options. A nil field
// leaves the base value untouched, so "unset" is distinguishable from a
// zero value such as temperature 0.0 or an empty preamble.
type Overrides struct {
	Model       *string
	Temperature *float64
	MaxTokens   *int
	Preamble    *string
	Streaming   *bool
	Template    *string
}

// DefaultOptions returns the built-in base configuration.
func DefaultOptions() Options {
	return Options{
		Model:       "Llama-3.1-8B-Instruct",
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Merge returns a copy of o with every set field of ov applied. This is the
// single layering primitive: preset application and later dynamic updates
// both go through it.
func (o Options) Merge(ov Overrides) Options {
	if ov.Model != nil {
		o.Model = *ov.Model
	}
	if ov.Temperature != nil {
		o.Temperature = *ov.Temperature
	}
	if ov.MaxTokens != nil {
		o.MaxTokens = *ov.MaxTokens
	}
	if ov.Preamble != nil {
		o.Preamble = *ov.Preamble
	}
	if ov.Streaming != nil {
		o.Streaming = *ov.Streaming
	}
	if ov.Template != nil {
		o.Template = *ov.Template
	}
	return o
}

// MergeOverrides combines two override sets; fields set in b win over a.
func MergeOverrides(a, b Overrides) Overrides {
	if b.Model != nil {
		a.Model = b.Model
	}
	if b.Temperature != nil {
		a.Temperature = b.Temperature
	}
	if b.MaxTokens != nil {
		a.MaxTokens = b.MaxTokens
	}
	if b.Preamble != nil {
		a.Preamble = b.Preamble
	}
	if b.Streaming != nil {
		a.Streaming = b.Streaming
	}
	if b.Template != nil {
		a.Template = b.Template
	}
	return a
}

// Preset names a fixed bundle of default configuration values. The catalog
// is closed: exactly these three entries exist.
type Preset int

const (
	PresetPrecise Preset = iota
	PresetBalanced
	PresetCreative
)

// ParsePreset maps a preset name string (as received from the CLI or HTTP
// boundary) to its Preset. Unknown names return false.
func ParsePreset(name string) (Preset, bool) {
	switch name {
	case "precise":
		return PresetPrecise, true
	case "balanced":
		return PresetBalanced, true
	case "creative":
		return PresetCreative, true
	}
	return 0, false
}

// String returns the preset's name.
func (p Preset) String() string {
	switch p {
	case PresetPrecise:
		return "precise"
	case PresetBalanced:
		return "balanced"
	case PresetCreative:
		return "creative"
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// Overrides returns the preset's configuration fragment, for layering over
// DefaultOptions via Merge.
func (p Preset) Overrides() Overrides {
	var temperature float64
	var preamble string
	switch p {
	case PresetPrecise:
		temperature = 0.0
		preamble = "You are a precise assistant. Answer concisely and stick to verifiable facts."
	case PresetBalanced:
		temperature = 0.3
		preamble = "You are a helpful assistant. Balance accuracy with approachable explanations."
	case PresetCreative:
		temperature = 1.0
		preamble = "You are a creative assistant. Explore ideas freely and favor original angles."
	}
	return Overrides{Temperature: &temperature, Preamble: &preamble}
}

// Presets returns the full catalog in its fixed order.
func Presets() []Preset {
	return []Preset{PresetPrecise, PresetBalanced, PresetCreative}
}

// Classify bands a temperature into a human-readable style label. It is a
// display convenience only and never feeds request parameters.
func Classify(temperature float64) string {
	switch {
	case temperature == 0.0:
		return "precise"
	case temperature > 0.0 && temperature <= 0.3:
		return "balanced"
	case temperature >= 1.0:
		return "creative"
	default:
		return fmt.Sprintf("custom (temperature: %g)", temperature)
	}
}
