// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName is the binary name, used in config paths and diagnostics.
const AppName = "qw"

// Inference server endpoints
const (
	// DefaultHost is the local Ollama server address.
	DefaultHost = "http://127.0.0.1:11434"
	// GeneratePath is the completion endpoint (newline-delimited JSON stream).
	GeneratePath = "/api/generate"
	// TagsPath lists locally available models.
	TagsPath = "/api/tags"
)

// Timeout constants used across the application
const (
	// InferenceTimeout bounds the whole generate exchange, connect through
	// last byte. The relay timeout is not enforced here: it is passed to the
	// external tools as an argument and honoring it is their business.
	InferenceTimeout = 300 * time.Second
)

// Application defaults
const (
	DefaultModel = "qwen2.5-coder:0.5b-instruct"
	// DefaultRelayTimeout is forwarded verbatim to codex/claude as a string.
	DefaultRelayTimeout = "180"
)

// External tool names resolved on PATH
const (
	CodexBin  = "codex"
	ClaudeBin = "claude"
	OllamaBin = "ollama"
)
