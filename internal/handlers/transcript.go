package handlers

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/service"
)

// TranscriptHandler renders a session's conversation as an HTML page.
// Assistant replies are markdown and rendered as such; user and system
// entries are shown as plain text.
type TranscriptHandler struct {
	chatService service.ChatService
	parser      goldmark.Markdown
	template    *template.Template
	logger      *slog.Logger
}

type transcriptEntry struct {
	Role      string
	Content   template.HTML
	Timestamp string
}

type transcriptPage struct {
	SessionID string
	Entries   []transcriptEntry
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(chatService service.ChatService) *TranscriptHandler {
	tmpl := template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Conversation {{.SessionID}}</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    .entry { margin-bottom: 1.5rem; }
    .role { font-weight: bold; text-transform: capitalize; }
    .system .content { color: #666; font-style: italic; }
    .meta { color: #999; font-size: 0.8rem; }
  </style>
</head>
<body>
  <h1>Conversation</h1>
  <p class="meta">Session {{.SessionID}}</p>
  {{range .Entries}}
  <div class="entry {{.Role}}">
    <span class="role">{{.Role}}</span> <span class="meta">{{.Timestamp}}</span>
    <div class="content">{{.Content}}</div>
  </div>
  {{end}}
</body>
</html>`))

	return &TranscriptHandler{
		chatService: chatService,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
		template: tmpl,
		logger:   slog.Default(),
	}
}

func (h *TranscriptHandler) getLogger(ctx context.Context) *slog.Logger {
	type loggerKeyType string
	const loggerKey loggerKeyType = "logger"
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return h.logger
}

// ServeHTTP handles GET /api/sessions/{sessionID}/transcript.
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.getLogger(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatService.History(ctx, sessionID)
	if err != nil {
		handleServiceError(w, ctx, logger, err, "Failed to fetch history")
		return
	}

	page := transcriptPage{SessionID: sessionID}
	for _, m := range messages {
		page.Entries = append(page.Entries, transcriptEntry{
			Role:      string(m.Role),
			Content:   h.renderContent(m, logger),
			Timestamp: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, page); err != nil {
		logger.ErrorContext(ctx, "failed to render transcript", "error", err)
	}
}

// renderContent converts assistant markdown to HTML and escapes everything
// else as plain text.
func (h *TranscriptHandler) renderContent(m chatbot.Message, logger *slog.Logger) template.HTML {
	if m.Role != chatbot.RoleAssistant {
		return template.HTML("<p>" + template.HTMLEscapeString(m.Content) + "</p>")
	}

	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(m.Content), &buf); err != nil {
		logger.Warn("failed to render markdown, falling back to plain text", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(m.Content) + "</p>")
	}
	return template.HTML(buf.String())
}
