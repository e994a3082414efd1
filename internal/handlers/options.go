package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/service"
)

// OptionsHandler handles reads and updates of a session's effective
// configuration.
type OptionsHandler struct {
	chatService service.ChatService
	logger      *slog.Logger
}

// NewOptionsHandler creates a new OptionsHandler.
func NewOptionsHandler(chatService service.ChatService) *OptionsHandler {
	return &OptionsHandler{
		chatService: chatService,
		logger:      slog.Default(),
	}
}

func (h *OptionsHandler) getLogger(ctx context.Context) *slog.Logger {
	type loggerKeyType string
	const loggerKey loggerKeyType = "logger"
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return h.logger
}

// OptionsResponse represents a session's effective configuration, with the
// style classification of its temperature.
type OptionsResponse struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Preamble    string  `json:"preamble,omitempty"`
	Streaming   bool    `json:"streaming"`
	Template    string  `json:"template,omitempty"`
	Style       string  `json:"style"`
}

func optionsResponse(opts chatbot.Options) OptionsResponse {
	return OptionsResponse{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Preamble:    opts.Preamble,
		Streaming:   opts.Streaming,
		Template:    opts.Template,
		Style:       chatbot.Classify(opts.Temperature),
	}
}

// Get handles GET /api/sessions/{sessionID}/options.
func (h *OptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	opts, err := h.chatService.GetOptions(ctx, sessionID)
	if err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to fetch options")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(optionsResponse(opts))
}

// Update handles PATCH /api/sessions/{sessionID}/options.
func (h *OptionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	var req OptionsOverrides
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opts, err := h.chatService.UpdateOptions(ctx, sessionID, req.toDomain())
	if err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to update options")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(optionsResponse(opts))
}
