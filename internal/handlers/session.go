package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/service"
)

// SessionHandler handles session lifecycle and history requests.
type SessionHandler struct {
	chatService service.ChatService
	logger      *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(chatService service.ChatService) *SessionHandler {
	return &SessionHandler{
		chatService: chatService,
		logger:      slog.Default(),
	}
}

func (h *SessionHandler) getLogger(ctx context.Context) *slog.Logger {
	type loggerKeyType string
	const loggerKey loggerKeyType = "logger"
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return h.logger
}

// CreateSessionRequest represents the HTTP payload for creating a session.
type CreateSessionRequest struct {
	Preset    string           `json:"preset,omitempty"`
	Overrides OptionsOverrides `json:"overrides,omitempty"`
}

// OptionsOverrides is the JSON shape of optional per-field configuration
// updates. Absent fields leave the current value untouched.
type OptionsOverrides struct {
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Preamble    *string  `json:"preamble,omitempty"`
	Streaming   *bool    `json:"streaming,omitempty"`
	Template    *string  `json:"template,omitempty"`
}

// toDomain converts the JSON overrides to the core representation.
func (o OptionsOverrides) toDomain() chatbot.Overrides {
	return chatbot.Overrides{
		Model:       o.Model,
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
		Preamble:    o.Preamble,
		Streaming:   o.Streaming,
		Template:    o.Template,
	}
}

// SessionResponse represents a created session.
type SessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)

	var req CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	sess, err := h.chatService.CreateSession(ctx, service.CreateSessionRequest{
		Preset:    req.Preset,
		Overrides: req.Overrides.toDomain(),
	})
	if err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to create session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(SessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Delete handles DELETE /api/sessions/{sessionID}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatService.DeleteSession(ctx, sessionID); err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HistoryMessage represents one history entry in HTTP responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// HistoryResponse represents a session's conversation history.
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// History handles GET /api/sessions/{sessionID}/history.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatService.History(ctx, sessionID)
	if err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to fetch history")
		return
	}

	resp := HistoryResponse{Messages: make([]HistoryMessage, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, HistoryMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ClearHistory handles DELETE /api/sessions/{sessionID}/history.
func (h *SessionHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatService.ClearHistory(ctx, sessionID); err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
