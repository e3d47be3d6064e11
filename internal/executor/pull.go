package executor

import (
	"context"
	"os"
	"os/exec"

	"github.com/quocvuong92/qw/internal/constants"
)

// Pull downloads a model through the ollama CLI. The child inherits
// stdout and stderr so the user sees ollama's own progress display
// instead of a silent wait.
func Pull(ctx context.Context, model string) error {
	cmd := exec.CommandContext(ctx, constants.OllamaBin, "pull", model)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
