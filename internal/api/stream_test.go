package api

import (
	"context"
	"strings"
	"testing"
)

func TestStreamProcessor_Process_SimpleContent(t *testing.T) {
	input := `{"response":"Hello","done":false}
{"response":" World","done":false}
{"response":"","done":true}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	var chunks []string
	err := processor.Process(context.Background(), func(content string) {
		chunks = append(chunks, content)
	})

	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Errorf("Process() got %d chunks, want 2", len(chunks))
	}

	if processor.GetContent() != "Hello World" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello World")
	}

	if !processor.Done() {
		t.Error("Done() = false, want true")
	}
}

func TestStreamProcessor_Process_FragmentOnDoneLine(t *testing.T) {
	input := `{"response":"Hello","done":false}
{"response":" World","done":true}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	// The final fragment arrives on the same line as done
	if processor.GetContent() != "Hello World" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello World")
	}
}

func TestStreamProcessor_Process_StopsAtDone(t *testing.T) {
	input := `{"response":"Hello","done":true}
{"response":" IGNORED","done":false}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	if processor.GetContent() != "Hello" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello")
	}
}

func TestStreamProcessor_Process_EmptyLines(t *testing.T) {
	input := `

{"response":"Hello","done":false}



{"response":"","done":true}

`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	if processor.GetContent() != "Hello" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello")
	}
}

func TestStreamProcessor_Process_EOFWithoutDone(t *testing.T) {
	input := `{"response":"Hello","done":false}
{"response":" World","done":false}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	// A stream that ends without a done marker is still a complete reply
	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	if processor.GetContent() != "Hello World" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello World")
	}

	if processor.Done() {
		t.Error("Done() = true, want false")
	}
}

func TestStreamProcessor_Process_NoTrailingNewline(t *testing.T) {
	input := `{"response":"Hello","done":false}
{"response":" World","done":true}`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	if err != nil {
		t.Errorf("Process() unexpected error: %v", err)
	}

	if processor.GetContent() != "Hello World" {
		t.Errorf("GetContent() = %q, want %q", processor.GetContent(), "Hello World")
	}
}

func TestStreamProcessor_Process_ContextCancelled(t *testing.T) {
	input := `{"response":"Hello","done":false}
{"response":" World","done":true}
`
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(ctx, func(content string) {})

	if err == nil {
		t.Error("Process() expected error for cancelled context, got nil")
	}
}

func TestStreamProcessor_Process_InvalidJSON(t *testing.T) {
	input := `{"response":"Hello","done":false}
invalid json here
{"response":" World","done":true}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	// A malformed line aborts the stream rather than risking a
	// silently truncated reply
	if err == nil {
		t.Fatal("Process() expected error for invalid JSON, got nil")
	}

	if !strings.Contains(err.Error(), "failed to parse streaming chunk") {
		t.Errorf("Process() error = %q, want parse failure", err)
	}
}

func TestStreamProcessor_Process_ServerError(t *testing.T) {
	input := `{"response":"Hel","done":false}
{"error":"model runner has unexpectedly stopped"}
{"response":"lo","done":true}
`
	processor := NewStreamProcessor(strings.NewReader(input))

	err := processor.Process(context.Background(), func(content string) {})

	if err == nil {
		t.Fatal("Process() expected error for server error line, got nil")
	}

	if err.Error() != "model runner has unexpectedly stopped" {
		t.Errorf("Process() error = %q, want server error message", err)
	}
}

func TestNewStreamProcessor(t *testing.T) {
	reader := strings.NewReader("")
	processor := NewStreamProcessor(reader)

	if processor == nil {
		t.Fatal("NewStreamProcessor() returned nil")
	}

	if processor.reader == nil {
		t.Error("NewStreamProcessor().reader is nil")
	}
}
