// Package executor runs qw's external processes: the codex and claude
// relays, the optional model pull, and the --execute shell step.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExecutionResult captures everything a finished subprocess left behind
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes a command with captured output. A non-zero exit status
// is reported through ExitCode, not as an error; the error return is
// reserved for failing to start the process at all.
func Run(ctx context.Context, name string, args ...string) (*ExecutionResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, err
	}

	return result, nil
}
