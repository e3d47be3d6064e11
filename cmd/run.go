package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quocvuong92/qw/internal/api"
	"github.com/quocvuong92/qw/internal/constants"
	"github.com/quocvuong92/qw/internal/display"
	"github.com/quocvuong92/qw/internal/executor"
	"github.com/quocvuong92/qw/internal/logging"
	"github.com/quocvuong92/qw/internal/runlog"
)

// ExitError carries the process exit status of a failed run after its
// diagnostics were already written to stderr. Relay and shell failures
// propagate the collaborator's own code; everything else carries 1.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCode maps a pipeline error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// fail reports a fatal error on stderr and returns the ExitError that
// terminates the run with status 1.
func (a *App) fail(format string, args ...interface{}) error {
	a.errorf(format, args...)
	return &ExitError{Code: 1}
}

// jsonOutput is the single object emitted in JSON mode. Relay keys are
// present only when that relay actually ran.
type jsonOutput struct {
	Qwen   string  `json:"qwen"`
	Codex  *string `json:"codex,omitempty"`
	Claude *string `json:"claude,omitempty"`
}

// runOnce executes one invocation of the tool: it resolves
// configuration and the prompt, then hands off to the prompt pipeline
// or one of the auxiliary modes.
func (a *App) runOnce(args []string) error {
	a.setupLogging()

	if err := a.cfg.Validate(); err != nil {
		return a.fail("%v", err)
	}

	if a.client == nil {
		a.client = api.NewClient(a.cfg)
	}
	defer a.client.Close()

	if a.listModels {
		return a.showModels()
	}

	if a.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logging.Debug("markdown renderer unavailable", logging.Fields{"error": err.Error()})
		}
	}

	if a.cfg.Interactive {
		a.runInteractive()
		return nil
	}

	prompt, err := a.resolvePrompt(args)
	if err != nil {
		return a.fail("%v", err)
	}

	return a.runPrompt(prompt)
}

// runPrompt is the one-shot pipeline shared by batch and interactive
// mode: binary check, system prompt, optional pull, inference, relays,
// output, log, optional shell execution.
func (a *App) runPrompt(prompt string) error {
	runLogger := logging.DefaultLogger.WithFields(logging.Fields{"run": uuid.New().String()})

	if err := executor.EnsureBinaries(a.cfg.RequiredBins()); err != nil {
		return a.fail("%v", err)
	}

	sysPrompt, err := a.loadSystemPrompt()
	if err != nil {
		return a.fail("sys file read failed: %v", err)
	}

	if a.cfg.AutoPull {
		runLogger.Debug("pulling model", logging.Fields{"model": a.cfg.Model})
		if err := executor.Pull(context.Background(), a.cfg.Model); err != nil {
			return a.fail("model pull failed: %v", err)
		}
	}

	req := &api.GenerateRequest{
		Model:       a.cfg.Model,
		Prompt:      prompt,
		Stream:      true,
		System:      sysPrompt,
		Temperature: a.cfg.Temperature,
		TopP:        a.cfg.TopP,
		MaxTokens:   a.cfg.MaxTokens,
		Seed:        a.cfg.Seed,
		Stop:        a.cfg.Stop,
	}
	runLogger.Debug("sending inference request", logging.Fields{
		"model":        a.cfg.Model,
		"prompt_chars": len(prompt),
	})

	sp := a.newSpinner("Thinking...")
	sp.Start()
	firstChunk := true
	qwenReply, err := a.client.Generate(context.Background(), req, func(string) {
		if firstChunk {
			firstChunk = false
			sp.UpdateMessage("Receiving...")
		}
	})
	sp.Stop()
	if err != nil {
		return a.fail("qwen request failed: %v", err)
	}
	runLogger.Debug("inference complete", logging.Fields{"reply_chars": len(qwenReply)})

	if !a.cfg.JSON && !a.cfg.Quiet {
		if a.cfg.Render {
			display.ShowContentRendered(qwenReply)
		} else {
			fmt.Fprintln(a.stdout, qwenReply)
		}
	}

	var codexReply, claudeReply *string
	if a.cfg.Codex {
		reply, err := a.runRelay(constants.CodexBin, qwenReply)
		if err != nil {
			return err
		}
		codexReply = reply
	}
	if a.cfg.Claude {
		reply, err := a.runRelay(constants.ClaudeBin, qwenReply)
		if err != nil {
			return err
		}
		claudeReply = reply
	}

	if a.cfg.JSON {
		if err := a.writeJSON(qwenReply, codexReply, claudeReply); err != nil {
			return err
		}
	}

	if a.cfg.LogFile != "" {
		rec := &runlog.Record{
			Prompt: prompt,
			Qwen:   qwenReply,
			Codex:  codexReply,
			Claude: claudeReply,
		}
		// A log failure is reported but never changes the outcome
		if err := runlog.Append(a.cfg.LogFile, rec); err != nil {
			a.errorf("log write failed: %v", err)
		}
	}

	if a.cfg.Execute {
		return a.runShellStep(qwenReply, codexReply, claudeReply)
	}

	return nil
}

// resolvePrompt builds the prompt from the positional args, or from
// stdin when none are given.
func (a *App) resolvePrompt(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("provide a prompt as args or stdin")
	}
	return prompt, nil
}

// loadSystemPrompt reads the file named by --sys, if any.
func (a *App) loadSystemPrompt() (string, error) {
	if a.cfg.SysFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(expandHome(a.cfg.SysFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// runRelay invokes one relay tool with the model reply as its final
// argument. On success it prints the human-mode section and returns the
// trimmed stdout; on a non-zero exit it relays the tool's own output to
// stderr and returns an ExitError carrying the tool's exit code.
func (a *App) runRelay(tool, input string) (*string, error) {
	sp := a.newSpinner("Waiting for " + tool + "...")
	sp.Start()

	var (
		result *executor.ExecutionResult
		err    error
	)
	if tool == constants.CodexBin {
		result, err = executor.RunCodex(context.Background(), a.cfg.Timeout, input)
	} else {
		result, err = executor.RunClaude(context.Background(), a.cfg.Timeout, input)
	}
	sp.Stop()

	if err != nil {
		return nil, a.fail("%s failed: %v", tool, err)
	}
	if result.ExitCode != 0 {
		out := result.Stderr
		if out == "" {
			out = result.Stdout
		}
		if out == "" {
			out = constants.AppName + ": " + tool + " failed"
		}
		fmt.Fprintln(a.stderr, out)
		return nil, &ExitError{Code: result.ExitCode}
	}

	reply := strings.TrimSpace(result.Stdout)
	if !a.cfg.JSON {
		fmt.Fprintf(a.stdout, "\n--- %s ---\n%s\n", tool, reply)
	}
	return &reply, nil
}

func (a *App) writeJSON(qwen string, codex, claude *string) error {
	data, err := json.Marshal(jsonOutput{Qwen: qwen, Codex: codex, Claude: claude})
	if err != nil {
		return a.fail("json encode failed: %v", err)
	}
	fmt.Fprintln(a.stdout, string(data))
	return nil
}

// runShellStep executes the best-available reply as a shell command.
// Priority: codex reply, then claude reply, then the model reply.
func (a *App) runShellStep(qwenReply string, codexReply, claudeReply *string) error {
	command := qwenReply
	if codexReply != nil {
		command = *codexReply
	} else if claudeReply != nil {
		command = *claudeReply
	}
	if command == "" {
		return a.fail("nothing to execute")
	}

	if executor.LooksDestructive(command) {
		display.ShowWarning("command looks destructive: " + command)
	}

	result, err := executor.RunShell(command)
	if err != nil {
		return a.fail("exec failed: %v", err)
	}

	if out := strings.TrimSpace(result.Stdout); out != "" {
		fmt.Fprintf(a.stdout, "\n--- exec ---\n%s\n", out)
	}
	if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
		fmt.Fprintf(a.stderr, "\n--- exec stderr ---\n%s\n", errOut)
	}

	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}

// newSpinner returns a progress spinner, or nil when quiet or JSON mode
// suppresses decoration.
func (a *App) newSpinner(message string) *display.Spinner {
	if a.cfg.Quiet || a.cfg.JSON {
		return nil
	}
	return display.NewSpinner(message)
}

// showModels lists the models installed on the Ollama server.
func (a *App) showModels() error {
	models, err := a.client.ListModels(context.Background())
	if err != nil {
		return a.fail("cannot list models: %v", err)
	}
	display.ShowModels(models, a.cfg.Model)
	return nil
}
