package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService chatterbox-ai/internal/service ChatService

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/contextutil"
)

// Session describes one chat session held by the service.
type Session struct {
	ID        string
	CreatedAt time.Time
}

// CreateSessionRequest carries the configuration for a new session.
// Preset, when non-empty, must name one of the preset catalog entries;
// Overrides are layered on top of the preset (or the defaults).
type CreateSessionRequest struct {
	Preset    string
	Overrides chatbot.Overrides
}

// ChatService exposes session-scoped chat functionality to transports.
// Each session owns an independent conversation and configuration; the
// service serializes the turns of a single session.
type ChatService interface {
	// CreateSession creates a new chat session and returns its descriptor.
	CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error)
	// DeleteSession removes a session and its conversation state.
	DeleteSession(ctx context.Context, sessionID string) error
	// SendMessage runs one blocking turn against a session.
	SendMessage(ctx context.Context, sessionID, message string) (string, error)
	// StreamMessage runs one streaming turn, forwarding each fragment to
	// callback in arrival order.
	StreamMessage(ctx context.Context, sessionID, message string, callback func(chunk string) error) error
	// History returns a copy of a session's conversation.
	History(ctx context.Context, sessionID string) ([]chatbot.Message, error)
	// ClearHistory empties a session's conversation, keeping its preamble.
	ClearHistory(ctx context.Context, sessionID string) error
	// GetOptions returns a session's effective configuration.
	GetOptions(ctx context.Context, sessionID string) (chatbot.Options, error)
	// UpdateOptions merges overrides into a session's configuration.
	UpdateOptions(ctx context.Context, sessionID string, ov chatbot.Overrides) (chatbot.Options, error)
}

// session pairs a bot with the mutex serializing its turns.
type session struct {
	mu        sync.Mutex
	bot       *chatbot.Bot
	createdAt time.Time
}

// chatService implements ChatService.
type chatService struct {
	client   chatbot.CompletionClient
	defaults chatbot.Overrides
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *slog.Logger
}

// NewChatService creates a new ChatService backed by the given completion
// client. All sessions share the client; everything else is per-session.
// Optional defaults (typically the deployment's model name) are layered
// under every session's own overrides.
func NewChatService(client chatbot.CompletionClient, defaults ...chatbot.Overrides) ChatService {
	svc := &chatService{
		client:   client,
		sessions: make(map[string]*session),
		logger:   slog.Default(),
	}
	for _, d := range defaults {
		svc.defaults = chatbot.MergeOverrides(svc.defaults, d)
	}
	return svc
}

func (s *chatService) CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error) {
	logger := contextutil.LoggerFromContext(ctx)

	overrides := chatbot.MergeOverrides(s.defaults, req.Overrides)

	var bot *chatbot.Bot
	var err error
	if req.Preset != "" {
		preset, ok := chatbot.ParsePreset(req.Preset)
		if !ok {
			logger.WarnContext(ctx, "unknown preset in create request", "preset", req.Preset)
			return Session{}, &ValidationError{
				Field:   "preset",
				Message: "unknown preset name",
			}
		}
		bot, err = chatbot.NewWithPreset(s.client, preset, overrides)
	} else {
		bot, err = chatbot.New(s.client, overrides)
	}
	if err != nil {
		if errors.Is(err, chatbot.ErrTemplateNotFound) {
			return Session{}, &ValidationError{
				Field:   "template",
				Message: "unknown template name",
			}
		}
		return Session{}, WrapError(err, "failed to create session")
	}

	sess := &session{bot: bot, createdAt: time.Now()}
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	logger.InfoContext(ctx, "session created", "session_id", id, "preset", req.Preset)
	return Session{ID: id, CreatedAt: sess.createdAt}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "session deleted", "session_id", sessionID)
	return nil
}

// lookup returns the session or ErrSessionNotFound.
func (s *chatService) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *chatService) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if message == "" {
		logger.WarnContext(ctx, "empty message in chat request", "session_id", sessionID)
		return "", &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	reply, err := sess.bot.SendMessage(ctx, message, nil)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get completion", "session_id", sessionID, "error", err)
		return "", externalErr(err)
	}

	logger.InfoContext(ctx, "chat request processed", "session_id", sessionID, "message_length", len(message), "reply_length", len(reply))
	return reply, nil
}

func (s *chatService) StreamMessage(ctx context.Context, sessionID, message string, callback func(chunk string) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	if message == "" {
		logger.WarnContext(ctx, "empty message in streaming chat request", "session_id", sessionID)
		return &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Force the streaming path for this turn regardless of the session's
	// streaming flag; the transport asked for fragments.
	streaming := true
	restore := sess.bot.Options().Streaming
	if _, err := sess.bot.UpdateOptions(chatbot.Overrides{Streaming: &streaming}); err != nil {
		return WrapError(err, "failed to enable streaming")
	}
	defer func() {
		_, _ = sess.bot.UpdateOptions(chatbot.Overrides{Streaming: &restore})
	}()

	var callbackErr error
	_, err = sess.bot.SendMessage(ctx, message, func(chunk string) {
		if callbackErr != nil {
			return
		}
		callbackErr = callback(chunk)
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to stream completion", "session_id", sessionID, "error", err)
		return externalErr(err)
	}
	if callbackErr != nil {
		return WrapError(callbackErr, "stream callback failed")
	}

	logger.InfoContext(ctx, "streaming chat request processed", "session_id", sessionID, "message_length", len(message))
	return nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]chatbot.Message, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.bot.History(), nil
}

func (s *chatService) ClearHistory(ctx context.Context, sessionID string) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.bot.ClearHistory()
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "history cleared", "session_id", sessionID)
	return nil
}

func (s *chatService) GetOptions(ctx context.Context, sessionID string) (chatbot.Options, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chatbot.Options{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.bot.Options(), nil
}

func (s *chatService) UpdateOptions(ctx context.Context, sessionID string, ov chatbot.Overrides) (chatbot.Options, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chatbot.Options{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	opts, err := sess.bot.UpdateOptions(ov)
	if err != nil {
		if errors.Is(err, chatbot.ErrTemplateNotFound) {
			return opts, &ValidationError{
				Field:   "template",
				Message: "unknown template name",
			}
		}
		return opts, WrapError(err, "failed to update options")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "options updated", "session_id", sessionID)
	return opts, nil
}
