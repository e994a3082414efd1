package chatbot_test

import (
	"testing"

	"chatterbox-ai/internal/chatbot"
)

func TestConversation_AppendAndSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		preamble  string
		userMsgs  []string
		replies   []string
		wantLen   int
		wantFirst chatbot.Role
	}{
		{
			name:      "no preamble",
			userMsgs:  []string{"one", "two"},
			replies:   []string{"reply one", "reply two"},
			wantLen:   4,
			wantFirst: chatbot.RoleUser,
		},
		{
			name:      "with preamble",
			preamble:  "You are terse.",
			userMsgs:  []string{"one"},
			replies:   []string{"reply one"},
			wantLen:   3,
			wantFirst: chatbot.RoleSystem,
		},
		{
			name:      "empty conversation",
			wantLen:   0,
			wantFirst: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := chatbot.NewConversation(tt.preamble)
			for i, msg := range tt.userMsgs {
				conv.AppendUser(msg)
				conv.AppendAssistant(tt.replies[i])
			}

			snap := conv.Snapshot()
			if len(snap) != tt.wantLen {
				t.Errorf("Snapshot() length = %d, want %d", len(snap), tt.wantLen)
			}
			if tt.wantLen > 0 && snap[0].Role != tt.wantFirst {
				t.Errorf("Snapshot()[0].Role = %v, want %v", snap[0].Role, tt.wantFirst)
			}
		})
	}
}

func TestConversation_RoleOrdering(t *testing.T) {
	conv := chatbot.NewConversation("You are terse.")
	conv.AppendUser("Hi")
	conv.AppendAssistant("Hello.")

	snap := conv.Snapshot()
	want := []struct {
		role    chatbot.Role
		content string
	}{
		{chatbot.RoleSystem, "You are terse."},
		{chatbot.RoleUser, "Hi"},
		{chatbot.RoleAssistant, "Hello."},
	}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot() length = %d, want %d", len(snap), len(want))
	}
	for i, w := range want {
		if snap[i].Role != w.role || snap[i].Content != w.content {
			t.Errorf("Snapshot()[%d] = {%v, %q}, want {%v, %q}", i, snap[i].Role, snap[i].Content, w.role, w.content)
		}
	}
}

func TestConversation_ClearReseedsPreamble(t *testing.T) {
	conv := chatbot.NewConversation("You are terse.")
	conv.AppendUser("Hi")
	conv.AppendAssistant("Hello.")

	conv.Clear()

	snap := conv.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("Snapshot() after Clear() length = %d, want 1", len(snap))
	}
	if snap[0].Role != chatbot.RoleSystem || snap[0].Content != "You are terse." {
		t.Errorf("Snapshot()[0] = {%v, %q}, want system preamble", snap[0].Role, snap[0].Content)
	}
}

func TestConversation_ClearWithoutPreamble(t *testing.T) {
	conv := chatbot.NewConversation("")
	conv.AppendUser("Hi")
	conv.Clear()

	if got := conv.Len(); got != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", got)
	}
}

func TestConversation_SetPreambleIdempotent(t *testing.T) {
	conv := chatbot.NewConversation("")
	conv.AppendUser("Hi")

	conv.SetPreamble("Be brief.")
	once := conv.Snapshot()

	conv.SetPreamble("Be brief.")
	twice := conv.Snapshot()

	if len(once) != len(twice) {
		t.Fatalf("length changed on repeated SetPreamble: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Role != twice[i].Role || once[i].Content != twice[i].Content {
			t.Errorf("message %d changed on repeated SetPreamble: {%v, %q} vs {%v, %q}",
				i, once[i].Role, once[i].Content, twice[i].Role, twice[i].Content)
		}
	}
	if twice[0].Role != chatbot.RoleSystem {
		t.Errorf("first message role = %v, want system", twice[0].Role)
	}
}

func TestConversation_SetPreambleReplacesExisting(t *testing.T) {
	conv := chatbot.NewConversation("Old preamble.")
	conv.AppendUser("Hi")

	conv.SetPreamble("New preamble.")

	snap := conv.Snapshot()
	systemCount := 0
	for _, m := range snap {
		if m.Role == chatbot.RoleSystem {
			systemCount++
		}
	}
	if systemCount != 1 {
		t.Errorf("system message count = %d, want 1", systemCount)
	}
	if snap[0].Role != chatbot.RoleSystem || snap[0].Content != "New preamble." {
		t.Errorf("Snapshot()[0] = {%v, %q}, want new system preamble at position 0", snap[0].Role, snap[0].Content)
	}
}

func TestConversation_SetPreambleEmptyRemoves(t *testing.T) {
	conv := chatbot.NewConversation("Old preamble.")
	conv.AppendUser("Hi")

	conv.SetPreamble("")

	for i, m := range conv.Snapshot() {
		if m.Role == chatbot.RoleSystem {
			t.Errorf("Snapshot()[%d] is a system message, want none after empty SetPreamble", i)
		}
	}
	if _, ok := conv.Preamble(); ok {
		t.Error("Preamble() reports active preamble after empty SetPreamble")
	}
}

func TestConversation_SnapshotIsIndependent(t *testing.T) {
	conv := chatbot.NewConversation("")
	conv.AppendUser("Hi")

	snap := conv.Snapshot()
	snap[0].Content = "mutated"

	if got := conv.Snapshot()[0].Content; got != "Hi" {
		t.Errorf("internal state changed through snapshot: content = %q, want Hi", got)
	}
}

func TestConversation_OutboundFiltersSystem(t *testing.T) {
	conv := chatbot.NewConversation("You are terse.")
	conv.AppendUser("Hi")
	conv.AppendAssistant("Hello.")
	conv.SetPreamble("Still terse.")
	conv.AppendUser("Bye")

	out := conv.Outbound()
	want := []chatbot.ChatMessage{
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello."},
		{Role: "user", Content: "Bye"},
	}
	if len(out) != len(want) {
		t.Fatalf("Outbound() length = %d, want %d", len(out), len(want))
	}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("Outbound()[%d] = %+v, want %+v", i, out[i], w)
		}
	}
}
