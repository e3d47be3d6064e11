package executor

import "context"

// RunShell executes a model-authored command line through the system
// shell. There is deliberately no timeout: the user asked for the
// command to run, and long-running commands are theirs to interrupt.
func RunShell(command string) (*ExecutionResult, error) {
	return Run(context.Background(), "/bin/sh", "-c", command)
}
