// Package cmd implements the qw command-line interface.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: App struct, cobra command setup, and flags
//   - run.go: the one-shot pipeline (prompt, binary check, inference,
//     relays, output, run log, shell execution)
//   - config.go: the "config init" subcommand
//
// ## Interactive Mode
//
//   - interactive.go: stateless REPL; each submitted line runs the same
//     one-shot pipeline as a batch invocation
//
// # Key Components
//
// ## App
//
// The App struct holds the configuration, the inference client, and the
// process streams. Streams are fields so tests can substitute buffers
// and assert exact output bytes.
//
// ## Pipeline
//
// runPrompt runs the steps strictly in order and stops at the first
// failure: diagnostics are written to stderr at the failure site, and
// an ExitError carries the process exit status up to Execute. Relay and
// shell-command failures propagate the collaborator's own exit code;
// every other failure exits 1.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
