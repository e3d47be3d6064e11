package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/qw/internal/api"
	"github.com/quocvuong92/qw/internal/config"
	"github.com/quocvuong92/qw/internal/constants"
	"github.com/quocvuong92/qw/internal/logging"
)

// App holds the application state
type App struct {
	cfg    *config.Config
	client api.Client

	// Streams, swappable in tests
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader

	listModels bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:    config.NewConfig(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := newRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command and binds its flags to app.cfg.
func newRootCmd(app *App) *cobra.Command {
	// Sampling parameters are only forwarded when the user actually set
	// them, so they are bound to locals and copied in via Changed below.
	var (
		temp      float64
		topP      float64
		maxTokens int
		seed      int
	)

	rootCmd := &cobra.Command{
		Use:   "qw [prompt...]",
		Short: "Local Qwen with an optional Codex/Claude pass",
		Long: `qw sends one prompt to a Qwen model on a local Ollama server, prints
the reply, and can hand that reply to the codex or claude CLIs, append
it to a JSONL log, or execute it as a shell command.

The prompt comes from the positional arguments, or from stdin when none
are given.

Examples:
  qw "rewrite this function in idiomatic Go"
  git diff | qw "write a commit message for this change"
  qw --codex "produce a fix for the failing test"
  qw --json --claude "explain this panic"
  qw --execute "a shell command printing disk usage of /var"
  qw -i                                 # Interactive mode
  qw -ir                                # Interactive with markdown rendering`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("temp") {
				app.cfg.Temperature = &temp
			}
			if cmd.Flags().Changed("top-p") {
				app.cfg.TopP = &topP
			}
			if cmd.Flags().Changed("max-tokens") {
				app.cfg.MaxTokens = &maxTokens
			}
			if cmd.Flags().Changed("seed") {
				app.cfg.Seed = &seed
			}

			if err := app.runOnce(args); err != nil {
				os.Exit(exitCode(err))
			}
		},
	}

	rootCmd.Flags().BoolVar(&app.cfg.Codex, "codex", false, "Pipe the Qwen reply into codex exec")
	rootCmd.Flags().BoolVar(&app.cfg.Claude, "claude", false, "Pipe the Qwen reply into the claude CLI")
	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Ollama model name (default: "+constants.DefaultModel+")")
	rootCmd.Flags().StringVar(&app.cfg.Timeout, "timeout", "", "Codex/claude timeout seconds, forwarded as-is (default: "+constants.DefaultRelayTimeout+")")
	rootCmd.Flags().Float64Var(&temp, "temp", 0, "Sampling temperature")
	rootCmd.Flags().Float64Var(&topP, "top-p", 0, "Nucleus sampling probability")
	rootCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum tokens to generate")
	rootCmd.Flags().IntVar(&seed, "seed", 0, "Random seed")
	rootCmd.Flags().StringArrayVar(&app.cfg.Stop, "stop", nil, "Stop string (repeatable)")
	rootCmd.Flags().StringVar(&app.cfg.SysFile, "sys", "", "File containing a system prompt")
	rootCmd.Flags().BoolVarP(&app.cfg.Quiet, "quiet", "q", false, "Suppress the initial Qwen reply echo")
	rootCmd.Flags().BoolVar(&app.cfg.JSON, "json", false, "Emit one JSON object instead of human-readable sections")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render the Qwen reply as markdown")
	rootCmd.Flags().BoolVar(&app.cfg.AutoPull, "auto-pull", false, "Run 'ollama pull' for the model before inference")
	rootCmd.Flags().BoolVar(&app.cfg.Execute, "execute", false, "Execute the final reply as a shell command")
	rootCmd.Flags().StringVar(&app.cfg.LogFile, "log-file", "", "Append a JSONL record of the run to this file")
	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive mode")
	rootCmd.Flags().BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&app.listModels, "list-models", false, "List models installed on the Ollama server")

	// Add subcommands
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// errorf writes a fatal diagnostic in the tool's "qw: ..." form.
func (a *App) errorf(format string, args ...interface{}) {
	fmt.Fprintf(a.stderr, constants.AppName+": "+format+"\n", args...)
}

// setupLogging sets the global log level from the verbose flag or the
// QW_LOG_LEVEL environment variable. Diagnostics in the run pipeline
// are all debug-level, so the default level keeps stderr clean.
func (a *App) setupLogging() {
	if a.cfg.Verbose {
		logging.SetLevel(logging.LevelDebug)
		return
	}
	if lvl := os.Getenv(config.EnvLogLevel); lvl != "" {
		logging.SetLevel(logging.ParseLevel(lvl))
	}
}
