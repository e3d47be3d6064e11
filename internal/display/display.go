// Package display renders qw's human-facing terminal output: styled
// errors and warnings, the progress spinner, markdown rendering for
// replies, and the model listing.
//
// Everything here is decoration for a human at a terminal. The primary
// surfaces (the reply itself, relay sections, the --json object) are
// written by the command layer and never pass through this package.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/quocvuong92/qw/internal/api"
	"github.com/quocvuong92/qw/internal/constants"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// renderer is the shared markdown renderer, nil until InitRenderer succeeds
var renderer *glamour.TermRenderer

// InitRenderer prepares the markdown renderer used by ShowContentRendered
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// ShowContent prints content to stdout as-is
func ShowContent(content string) {
	fmt.Println(content)
}

// ShowContentRendered prints content through the markdown renderer,
// falling back to plain output when rendering is unavailable
func ShowContentRendered(content string) {
	if renderer == nil {
		ShowContent(content)
		return
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Print(rendered)
}

// ShowError prints an error message to stderr with the qw prefix
func ShowError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(constants.AppName+": "+msg))
}

// ShowWarning prints a warning to stderr with the qw prefix
func ShowWarning(msg string) {
	fmt.Fprintln(os.Stderr, warningStyle.Render(constants.AppName+": warning: "+msg))
}

// ShowModels prints the installed models, marking the active one
func ShowModels(models []api.ModelInfo, current string) {
	if len(models) == 0 {
		fmt.Println("No models installed. Pull one with: ollama pull " + constants.DefaultModel)
		return
	}

	fmt.Println("Available models:")
	for _, m := range models {
		marker := " "
		if m.Name == current {
			marker = "*"
		}
		line := fmt.Sprintf(" %s %-42s %10s", marker, m.Name, formatSize(m.Size))
		if m.Name == current {
			line = activeStyle.Render(line)
		}
		fmt.Println(line)
	}
}

// IsTTY reports whether the given file is attached to a terminal
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatSize renders a byte count the way ollama list does
func formatSize(size int64) string {
	const (
		kb = 1000
		mb = 1000 * kb
		gb = 1000 * mb
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.1f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.0f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.0f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
