package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quocvuong92/qw/internal/config"
	"github.com/quocvuong92/qw/internal/constants"
	"github.com/quocvuong92/qw/internal/logging"
)

// GenerateRequest represents the /api/generate request body.
// Sampling fields use pointers so unset values stay out of the wire
// payload entirely and the server falls back to its own defaults.
type GenerateRequest struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	Stream      bool     `json:"stream"`
	System      string   `json:"system,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Seed        *int     `json:"seed,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// GenerateChunk represents one NDJSON line of a streaming generate response
type GenerateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// ModelInfo describes one installed model from /api/tags
type ModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// TagsResponse represents the /api/tags response body
type TagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// OllamaErrorResponse represents an Ollama API error body
type OllamaErrorResponse struct {
	Error string `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// OllamaClient is the Ollama HTTP API client
type OllamaClient struct {
	httpClient *http.Client
	config     *config.Config
	httpLogger *logging.HTTPLogger
}

// NewOllamaClient creates a new Ollama client. The HTTP client timeout
// bounds the whole exchange, including reading the response stream, so
// a stalled server cannot hang a run indefinitely.
func NewOllamaClient(cfg *config.Config) *OllamaClient {
	transport := http.DefaultTransport

	var httpLogger *logging.HTTPLogger
	if cfg.Verbose {
		logger := logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
		})
		httpLogger = logging.NewHTTPLogger(logger)
		transport = logging.NewLoggingRoundTripper(http.DefaultTransport, httpLogger, true)
	}

	return &OllamaClient{
		httpClient: &http.Client{
			Timeout:   constants.InferenceTimeout,
			Transport: transport,
		},
		config:     cfg,
		httpLogger: httpLogger,
	}
}

// Generate sends a streaming generate request and returns the accumulated
// reply, trimmed of surrounding whitespace. onChunk is called for each
// response fragment as it arrives.
func (c *OllamaClient) Generate(ctx context.Context, genReq *GenerateRequest, onChunk func(content string)) (string, error) {
	jsonData, err := json.Marshal(genReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GenerateURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp OllamaErrorResponse
		errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			errMsg = errResp.Error
		}
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    errMsg,
		}
	}

	processor := NewStreamProcessor(resp.Body)

	handler := onChunk
	var chunkCount, totalBytes int
	start := time.Now()
	if c.httpLogger != nil {
		handler = func(content string) {
			chunkCount++
			totalBytes += len(content)
			onChunk(content)
		}
	}

	if err := processor.Process(ctx, handler); err != nil {
		return "", err
	}

	if c.httpLogger != nil {
		c.httpLogger.LogStreamEnd(time.Since(start), totalBytes, chunkCount)
	}

	return strings.TrimSpace(processor.GetContent()), nil
}

// ListModels fetches the models installed on the server
func (c *OllamaClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.TagsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp OllamaErrorResponse
		errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			errMsg = errResp.Error
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errMsg,
		}
	}

	var tags TagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return tags.Models, nil
}

// Close is a no-op for OllamaClient as it doesn't hold any resources
func (c *OllamaClient) Close() {
	// No resources to clean up
}
