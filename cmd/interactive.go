// Package cmd implements the qw command-line interface.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/qw/internal/api"
	"github.com/quocvuong92/qw/internal/display"
)

// interactiveSession holds the REPL state. There is deliberately no
// conversation history: every submitted line is an independent one-shot
// run through the same pipeline as a batch invocation.
type interactiveSession struct {
	app         *App
	models      []api.ModelInfo
	exitFlag    bool
	inputBuffer []string // buffer for multiline input
}

// completer suggests slash commands, and model names after "/model ".
func (s *interactiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Only show suggestions when input starts with "/"
	if !strings.HasPrefix(text, "/") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	if strings.HasPrefix(strings.ToLower(text), "/model ") {
		var suggestions []prompt.Suggest
		for _, m := range s.models {
			desc := ""
			if m.Name == s.app.cfg.Model {
				desc = "(current)"
			}
			suggestions = append(suggestions, prompt.Suggest{Text: m.Name, Description: desc})
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "/model", Description: "Show/switch model (current: " + s.app.cfg.Model + ")"},
		{Text: "/models", Description: "List models installed on the server"},
		{Text: "/help", Description: "Show all available commands"},
		{Text: "/exit", Description: "Exit interactive mode"},
		{Text: "/q", Description: "Exit (alias)"},
		{Text: "/h", Description: "Help (alias)"},
	}
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the REPL. Each line runs the one-shot pipeline;
// a failing line prints its usual diagnostics and returns to the prompt
// instead of exiting the process.
func (a *App) runInteractive() {
	fmt.Println("qw - Interactive Mode")
	fmt.Printf("Model: %s\n", a.cfg.Model)
	fmt.Printf("Host: %s\n", a.cfg.Host)
	fmt.Println("Type /help for commands, Ctrl+C or Ctrl+D to quit")
	fmt.Println("End a line with \\ for multiline input")
	fmt.Println()

	session := &interactiveSession{app: a}

	// Model names feed completion; the REPL works fine without them
	if models, err := a.client.ListModels(context.Background()); err == nil {
		session.models = models
	}

	p := prompt.New(
		session.execute,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("> "),
		prompt.WithTitle("qw"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkGray),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(8),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// execute handles one submitted REPL line.
func (s *interactiveSession) execute(input string) {
	if s.exitFlag {
		return
	}

	// Backslash continuation buffers lines until one ends without it
	if strings.HasSuffix(input, "\\") {
		s.inputBuffer = append(s.inputBuffer, strings.TrimSuffix(input, "\\"))
		fmt.Print("... ")
		return
	}
	if len(s.inputBuffer) > 0 {
		s.inputBuffer = append(s.inputBuffer, input)
		input = strings.Join(s.inputBuffer, "\n")
		s.inputBuffer = nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if strings.HasPrefix(input, "/") {
		if s.handleCommand(input) {
			s.exitFlag = true
		}
		return
	}

	// Diagnostics were already printed; the REPL stays up either way
	_ = s.app.runPrompt(input)
	fmt.Println()
}

// handleCommand processes slash commands in interactive mode.
// Returns true if the session should exit, false otherwise.
func (s *interactiveSession) handleCommand(input string) bool {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/exit", "/quit", "/q":
		fmt.Println("Goodbye!")
		return true

	case "/model":
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			s.app.cfg.Model = strings.TrimSpace(parts[1])
			fmt.Printf("Switched to model: %s\n", s.app.cfg.Model)
		} else {
			fmt.Printf("Current model: %s\n", s.app.cfg.Model)
		}

	case "/models":
		models, err := s.app.client.ListModels(context.Background())
		if err != nil {
			display.ShowError(fmt.Sprintf("cannot list models: %v", err))
			return false
		}
		s.models = models
		display.ShowModels(models, s.app.cfg.Model)

	case "/help", "/h":
		fmt.Println("\nCommands:")
		fmt.Printf("  %-18s %s\n", "/model <name>", "Switch model")
		fmt.Printf("  %-18s %s\n", "/model", "Show current model")
		fmt.Printf("  %-18s %s\n", "/models", "List models installed on the server")
		fmt.Printf("  %-18s %s\n", "/exit, /quit, /q", "Exit interactive mode")
		fmt.Printf("  %-18s %s\n", "/help, /h", "Show this help")
		fmt.Println()

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type /help for available commands")
	}

	return false
}
