package chatbot

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks chatterbox-ai/internal/chatbot CompletionClient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NoResponseText is committed as the assistant message when the external
// service returns a usable response with no text in it.
const NoResponseText = "[no response received]"

// CompletionRequest is the outbound payload for one turn: the non-system
// history plus the effective generation parameters.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// CompletionClient is the external chat service as this package consumes it.
// Authentication and connection setup are the implementation's concern.
type CompletionClient interface {
	// Complete performs a single blocking completion and returns the full
	// reply text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// CompleteStream performs a streaming completion, invoking callback for
	// each text fragment in arrival order.
	CompleteStream(ctx context.Context, req CompletionRequest, callback func(chunk string) error) error
}

// Bot is one chat session: an exclusive conversation history plus an
// effective configuration, and the orchestration that turns one piece of
// caller text into one committed exchange. A Bot processes one turn at a
// time; it is not safe for concurrent use.
type Bot struct {
	client CompletionClient
	opts   Options
	conv   *Conversation
	logger *slog.Logger
}

// New creates a session from the built-in defaults layered with overrides.
func New(client CompletionClient, overrides Overrides) (*Bot, error) {
	return newBot(client, DefaultOptions().Merge(overrides))
}

// NewWithPreset creates a session from the built-in defaults, the preset's
// fragment, and caller overrides, in that precedence order.
func NewWithPreset(client CompletionClient, preset Preset, overrides Overrides) (*Bot, error) {
	return newBot(client, DefaultOptions().Merge(preset.Overrides()).Merge(overrides))
}

func newBot(client CompletionClient, opts Options) (*Bot, error) {
	if opts.Template != "" {
		if _, ok := LookupTemplate(opts.Template); !ok {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, opts.Template)
		}
	}
	return &Bot{
		client: client,
		opts:   opts,
		conv:   NewConversation(opts.Preamble),
		logger: slog.Default(),
	}, nil
}

// SendMessage runs one turn with the caller's text, rewritten through the
// active template when one is set. When streaming is enabled each fragment
// is passed to observer as it arrives; observer may be nil. The returned
// text is the full assistant reply, also committed to history.
func (b *Bot) SendMessage(ctx context.Context, text string, observer func(chunk string)) (string, error) {
	if b.opts.Template != "" {
		tmpl, ok := LookupTemplate(b.opts.Template)
		if !ok {
			// SetTemplate and UpdateOptions validate names, so this only
			// happens if the registry shrank underneath an active name.
			return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, b.opts.Template)
		}
		text = tmpl.Render(text)
	}
	return b.send(ctx, text, observer)
}

// SendTemplatedMessage runs one turn with the caller's text rewritten
// through the named template, regardless of the active template setting.
func (b *Bot) SendTemplatedMessage(ctx context.Context, name, text string, observer func(chunk string)) (string, error) {
	tmpl, ok := LookupTemplate(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return b.send(ctx, tmpl.Render(text), observer)
}

// send commits the user turn, dispatches it, and commits the reply. The user
// message stays committed even when dispatch fails, so a retried call
// appends a second copy rather than replacing the first.
func (b *Bot) send(ctx context.Context, text string, observer func(chunk string)) (string, error) {
	b.conv.AppendUser(text)

	req := CompletionRequest{
		Model:       b.opts.Model,
		Messages:    b.conv.Outbound(),
		Temperature: b.opts.Temperature,
		MaxTokens:   b.opts.MaxTokens,
	}

	var reply string
	var err error
	if b.opts.Streaming {
		var sb strings.Builder
		err = b.client.CompleteStream(ctx, req, func(chunk string) error {
			sb.WriteString(chunk)
			if observer != nil {
				observer(chunk)
			}
			return nil
		})
		reply = sb.String()
	} else {
		reply, err = b.client.Complete(ctx, req)
		if err == nil && reply == "" {
			reply = NoResponseText
		}
	}
	if err != nil {
		b.logger.ErrorContext(ctx, "chat dispatch failed", "model", b.opts.Model, "streaming", b.opts.Streaming, "error", err)
		return "", wrapRequestErr(err)
	}

	b.conv.AppendAssistant(reply)
	b.logger.InfoContext(ctx, "turn completed", "history_len", b.conv.Len(), "reply_length", len(reply))
	return reply, nil
}

// History returns an independent copy of the conversation so far.
func (b *Bot) History() []Message {
	return b.conv.Snapshot()
}

// ClearHistory empties the conversation, re-seeding the preamble's system
// message when one is active.
func (b *Bot) ClearHistory() {
	b.conv.Clear()
}

// SetPreamble installs text as the single system message and records it in
// the effective configuration. An empty text removes the preamble.
func (b *Bot) SetPreamble(text string) {
	b.opts.Preamble = text
	b.conv.SetPreamble(text)
}

// SetTemplate activates the named template for subsequent SendMessage calls.
// An unknown name returns ErrTemplateNotFound and leaves the active template
// unchanged.
func (b *Bot) SetTemplate(name string) error {
	if _, ok := LookupTemplate(name); !ok {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	b.opts.Template = name
	return nil
}

// ClearTemplate deactivates the active template.
func (b *Bot) ClearTemplate() {
	b.opts.Template = ""
}

// Options returns the current effective configuration.
func (b *Bot) Options() Options {
	return b.opts
}

// UpdateOptions merges overrides into the effective configuration with the
// same precedence rules used at construction. A template override is
// validated against the registry; a preamble override is applied to the
// conversation as well.
func (b *Bot) UpdateOptions(ov Overrides) (Options, error) {
	if ov.Template != nil && *ov.Template != "" {
		if _, ok := LookupTemplate(*ov.Template); !ok {
			return b.opts, fmt.Errorf("%w: %q", ErrTemplateNotFound, *ov.Template)
		}
	}
	b.opts = b.opts.Merge(ov)
	if ov.Preamble != nil {
		b.conv.SetPreamble(*ov.Preamble)
	}
	return b.opts, nil
}

// PresetInfo returns the style classification of the effective temperature.
func (b *Bot) PresetInfo() string {
	return Classify(b.opts.Temperature)
}

// Info returns a one-line human-readable rendering of the effective
// configuration, for display by interactive frontends.
func (b *Bot) Info() string {
	template := b.opts.Template
	if template == "" {
		template = "none"
	}
	streaming := "off"
	if b.opts.Streaming {
		streaming = "on"
	}
	return fmt.Sprintf("model=%s temperature=%g (%s) max_tokens=%d streaming=%s template=%s",
		b.opts.Model, b.opts.Temperature, b.PresetInfo(), b.opts.MaxTokens, streaming, template)
}
