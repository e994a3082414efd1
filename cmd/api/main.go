package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/config"
	"chatterbox-ai/internal/http"
	"chatterbox-ai/internal/llm"
	"chatterbox-ai/internal/service"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Create completions client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)

	// Create chat service; the configured model is every session's default
	chatService := service.NewChatService(llmClient, chatbot.Overrides{
		Model: &cfg.LLMModelName,
	})
	slog.Info("Chat service initialized", "model", cfg.LLMModelName)

	// Create router with dependencies
	deps := &http.Deps{
		ChatService: chatService,
		Completions: llmClient,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
