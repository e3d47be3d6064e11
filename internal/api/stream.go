package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// StreamProcessor handles NDJSON stream processing for generate responses
type StreamProcessor struct {
	reader         *bufio.Reader
	contentBuilder strings.Builder
	done           bool
}

// NewStreamProcessor creates a new NDJSON stream processor
func NewStreamProcessor(r io.Reader) *StreamProcessor {
	return &StreamProcessor{
		reader: bufio.NewReader(r),
	}
}

// Process reads and processes the NDJSON stream, calling onChunk for each
// response fragment. A line that fails to parse or that carries a server
// error aborts the stream; partial output is never silently kept.
func (p *StreamProcessor) Process(ctx context.Context, onChunk func(content string)) error {
	for {
		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := p.reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}

		// The final line may arrive without a trailing newline,
		// so parse before acting on EOF.
		line = strings.TrimSpace(line)
		if line != "" {
			var chunk GenerateChunk
			if err := json.Unmarshal([]byte(line), &chunk); err != nil {
				return fmt.Errorf("failed to parse streaming chunk: %w", err)
			}

			if chunk.Error != "" {
				return errors.New(chunk.Error)
			}

			// The done line can still carry a final fragment
			if chunk.Response != "" {
				p.contentBuilder.WriteString(chunk.Response)
				onChunk(chunk.Response)
			}

			if chunk.Done {
				p.done = true
				break
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	return nil
}

// GetContent returns the accumulated content
func (p *StreamProcessor) GetContent() string {
	return p.contentBuilder.String()
}

// Done reports whether the server marked the stream complete
func (p *StreamProcessor) Done() bool {
	return p.done
}
