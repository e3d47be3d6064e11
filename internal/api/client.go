// Package api provides the HTTP client for a local Ollama server,
// covering streaming generation and model listing.
package api

import (
	"context"

	"github.com/quocvuong92/qw/internal/config"
)

// Client defines the interface for the inference backend.
// The single concrete implementation talks to Ollama; the interface
// exists so command-level tests can substitute a mock.
type Client interface {
	// Generate sends a streaming generate request and returns the
	// accumulated reply, trimmed of surrounding whitespace
	Generate(ctx context.Context, genReq *GenerateRequest, onChunk func(content string)) (string, error)

	// ListModels returns the models installed on the server
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Close releases any resources held by the client
	Close()
}

// Ensure the Ollama client implements the Client interface
var _ Client = (*OllamaClient)(nil)

// NewClient creates a client for the configured Ollama server
func NewClient(cfg *config.Config) Client {
	return NewOllamaClient(cfg)
}
