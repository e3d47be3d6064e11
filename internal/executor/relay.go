package executor

import (
	"context"

	"github.com/quocvuong92/qw/internal/constants"
)

// The relay commands receive the model reply as their final argument
// and the timeout value exactly as the user supplied it. Interpreting
// the timeout is the relay tool's business, not ours, so no process
// deadline is set here.

// RunCodex hands a reply to the codex CLI
func RunCodex(ctx context.Context, timeout, reply string) (*ExecutionResult, error) {
	return Run(ctx, constants.CodexBin, "exec", "--timeout", timeout, reply)
}

// RunClaude hands a reply to the claude CLI
func RunClaude(ctx context.Context, timeout, reply string) (*ExecutionResult, error) {
	return Run(ctx, constants.ClaudeBin, "-t", timeout, reply)
}
