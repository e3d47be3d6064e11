package display

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while waiting for the model.
// It stays completely silent when stderr is not a terminal, so piped
// and redirected runs see only the real output. A nil *Spinner is a
// valid no-op, which callers use when quiet or JSON mode suppresses
// decoration entirely.
type Spinner struct {
	s       *spinner.Spinner
	enabled bool
}

// NewSpinner creates a spinner with the given message
func NewSpinner(message string) *Spinner {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " " + message
	return &Spinner{
		s:       sp,
		enabled: IsTTY(os.Stderr),
	}
}

// Start begins the spinner animation
func (sp *Spinner) Start() {
	if sp == nil || !sp.enabled {
		return
	}
	sp.s.Start()
}

// Stop halts the spinner and clears its line
func (sp *Spinner) Stop() {
	if sp == nil || !sp.enabled {
		return
	}
	sp.s.Stop()
}

// UpdateMessage changes the text shown next to the spinner
func (sp *Spinner) UpdateMessage(message string) {
	if sp == nil || !sp.enabled {
		return
	}
	sp.s.Suffix = " " + message
}
