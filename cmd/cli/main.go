package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/config"
	"chatterbox-ai/internal/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Keep the terminal clean for chat output; structured logs go to a
	// discard handler unless debug logging is requested.
	if cfg.LogLevel == slog.LevelDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
	bot, err := chatbot.New(client, chatbot.Overrides{Model: &cfg.LLMModelName})
	if err != nil {
		log.Fatalf("Failed to create chatbot: %v", err)
	}

	fmt.Println("chatterbox-ai — type a message, or 'quit' to exit.")
	fmt.Println("Commands: quit, exit, clear, history, streaming, templates, template <name>, no-template, info, preamble")

	if err := runLoop(bot, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Input error: %v", err)
	}
}

// runLoop reads lines from in until EOF or a quit command, dispatching
// commands and chat turns. A failed turn is reported and the loop continues.
func runLoop(bot *chatbot.Bot, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	ctx := context.Background()

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command := strings.ToLower(line)
		switch {
		case command == "quit" || command == "exit":
			fmt.Fprintln(out, "Bye.")
			return nil

		case command == "clear":
			bot.ClearHistory()
			fmt.Fprintln(out, "History cleared.")

		case command == "history":
			printHistory(out, bot.History())

		case command == "streaming":
			streaming := !bot.Options().Streaming
			if _, err := bot.UpdateOptions(chatbot.Overrides{Streaming: &streaming}); err != nil {
				fmt.Fprintf(out, "Failed to toggle streaming: %v\n", err)
				continue
			}
			if streaming {
				fmt.Fprintln(out, "Streaming enabled.")
			} else {
				fmt.Fprintln(out, "Streaming disabled.")
			}

		case command == "templates":
			for _, t := range chatbot.Templates() {
				fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
			}

		case strings.HasPrefix(command, "template "):
			// Template names are case-sensitive; only the command word is not.
			name := strings.TrimSpace(line[len("template "):])
			if err := bot.SetTemplate(name); err != nil {
				fmt.Fprintf(out, "Unknown template %q. Use 'templates' to list available ones.\n", name)
				continue
			}
			fmt.Fprintf(out, "Template %q activated.\n", name)

		case command == "no-template":
			bot.ClearTemplate()
			fmt.Fprintln(out, "Template deactivated.")

		case command == "info":
			fmt.Fprintln(out, bot.Info())

		case command == "preamble":
			fmt.Fprint(out, "New preamble (empty to remove): ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			bot.SetPreamble(strings.TrimSpace(scanner.Text()))
			fmt.Fprintln(out, "Preamble updated.")

		default:
			sendTurn(ctx, bot, out, line)
		}
	}
}

// sendTurn runs one chat turn, printing fragments live when streaming.
func sendTurn(ctx context.Context, bot *chatbot.Bot, out io.Writer, text string) {
	streaming := bot.Options().Streaming

	var observer func(chunk string)
	if streaming {
		observer = func(chunk string) {
			fmt.Fprint(out, chunk)
		}
	}

	reply, err := bot.SendMessage(ctx, text, observer)
	if err != nil {
		fmt.Fprintf(out, "Request failed: %v\n", err)
		return
	}

	if streaming {
		// Fragments were already printed as they arrived.
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, reply)
	}
}

// printHistory renders the conversation so far.
func printHistory(out io.Writer, messages []chatbot.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(out, "No messages yet.")
		return
	}
	for _, m := range messages {
		fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Content)
	}
}
