package chatbot

import "time"

// Role identifies the author of a conversation message. It is a closed set;
// every switch over Role handles exactly these three values.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation.
type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// ChatMessage is the wire shape of one outbound message. System messages are
// never part of the outbound payload; see Conversation.Outbound.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered, mutable message history of one chat session.
// At most one system message exists at a time, and it is always first.
// History grows without bound; trimming is the caller's concern.
type Conversation struct {
	preamble    string
	hasPreamble bool
	messages    []Message
}

// NewConversation creates a conversation, seeded with a single system message
// when preamble is non-empty.
func NewConversation(preamble string) *Conversation {
	c := &Conversation{}
	if preamble != "" {
		c.SetPreamble(preamble)
	}
	return c
}

// AppendUser appends a user message.
func (c *Conversation) AppendUser(text string) {
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text, CreatedAt: time.Now()})
}

// AppendAssistant appends an assistant message.
func (c *Conversation) AppendAssistant(text string) {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: text, CreatedAt: time.Now()})
}

// SetPreamble replaces any existing system message with a single system
// message at position 0. Calling it twice with the same text leaves the
// conversation in the same state as calling it once. An empty text removes
// the preamble entirely.
func (c *Conversation) SetPreamble(text string) {
	kept := c.messages[:0]
	for _, m := range c.messages {
		if m.Role != RoleSystem {
			kept = append(kept, m)
		}
	}
	c.messages = kept

	c.preamble = text
	c.hasPreamble = text != ""
	if c.hasPreamble {
		sys := Message{Role: RoleSystem, Content: text, CreatedAt: time.Now()}
		c.messages = append([]Message{sys}, c.messages...)
	}
}

// Preamble returns the active preamble text and whether one is set.
func (c *Conversation) Preamble() (string, bool) {
	return c.preamble, c.hasPreamble
}

// Clear empties the history. When a preamble is active the conversation is
// re-seeded with its system message, returning to the freshly-initialized
// state rather than a fully empty one.
func (c *Conversation) Clear() {
	c.messages = nil
	if c.hasPreamble {
		c.messages = append(c.messages, Message{Role: RoleSystem, Content: c.preamble, CreatedAt: time.Now()})
	}
}

// Len returns the number of messages, the system message included.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Snapshot returns an independent copy of the history. Mutating the returned
// slice never affects the conversation.
func (c *Conversation) Snapshot() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Outbound returns the history in the shape sent to the completions API:
// system messages filtered out, order preserved.
func (c *Conversation) Outbound() []ChatMessage {
	out := make([]ChatMessage, 0, len(c.messages))
	for _, m := range c.messages {
		switch m.Role {
		case RoleSystem:
			// never sent externally
		case RoleUser, RoleAssistant:
			out = append(out, ChatMessage{Role: string(m.Role), Content: m.Content})
		}
	}
	return out
}
