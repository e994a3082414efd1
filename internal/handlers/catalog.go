package handlers

import (
	"encoding/json"
	"net/http"

	"chatterbox-ai/internal/chatbot"
)

// TemplateInfo represents one prompt template in catalog responses.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplatesResponse lists the template catalog in registration order.
type TemplatesResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

// ListTemplates handles GET /api/templates. The catalog is static, so no
// service round-trip is needed.
func ListTemplates(w http.ResponseWriter, r *http.Request) {
	resp := TemplatesResponse{}
	for _, t := range chatbot.Templates() {
		resp.Templates = append(resp.Templates, TemplateInfo{
			Name:        t.Name,
			Description: t.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// PresetInfo represents one preset in catalog responses.
type PresetInfo struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	Preamble    string  `json:"preamble"`
}

// PresetsResponse lists the preset catalog.
type PresetsResponse struct {
	Presets []PresetInfo `json:"presets"`
}

// ListPresets handles GET /api/presets.
func ListPresets(w http.ResponseWriter, r *http.Request) {
	resp := PresetsResponse{}
	for _, p := range chatbot.Presets() {
		ov := p.Overrides()
		info := PresetInfo{Name: p.String()}
		if ov.Temperature != nil {
			info.Temperature = *ov.Temperature
		}
		if ov.Preamble != nil {
			info.Preamble = *ov.Preamble
		}
		resp.Presets = append(resp.Presets, info)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
