package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chatterbox-ai/internal/handlers"
	"chatterbox-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService service.ChatService
	Completions handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	sessionHandler := handlers.NewSessionHandler(deps.ChatService)
	optionsHandler := handlers.NewOptionsHandler(deps.ChatService)
	transcriptHandler := handlers.NewTranscriptHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.Completions)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Get("/templates", handlers.ListTemplates)
		r.Get("/presets", handlers.ListPresets)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", sessionHandler.Delete)
				r.Method(http.MethodPost, "/chat", chatHandler)
				r.Get("/history", sessionHandler.History)
				r.Delete("/history", sessionHandler.ClearHistory)
				r.Get("/options", optionsHandler.Get)
				r.Patch("/options", optionsHandler.Update)
				r.Method(http.MethodGet, "/transcript", transcriptHandler)
			})
		})
	})

	return r
}
