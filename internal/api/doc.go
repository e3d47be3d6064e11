// Package api provides the HTTP client for a local Ollama server.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Client
//
//   - client.go: Client interface and factory function (NewClient)
//   - ollama.go: Ollama /api/generate and /api/tags client implementation
//   - stream.go: NDJSON processor for streaming generate responses
//
// # Usage
//
// ## Creating a client
//
//	cfg := config.NewConfig()
//	cfg.Validate()
//	client := api.NewClient(cfg)
//	defer client.Close()
//
// ## Streaming a reply
//
//	req := &api.GenerateRequest{Model: cfg.Model, Prompt: prompt, Stream: true}
//	reply, err := client.Generate(ctx, req, func(content string) {
//	    // called for each fragment as it arrives
//	})
//
// # Interface Design
//
// The Client interface supports dependency injection for easier testing.
// The concrete OllamaClient can be mocked using the interface type.
package api
