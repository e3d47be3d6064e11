// Package runlog appends one JSON record per run to a user-chosen file.
// The resulting JSONL stream is meant for later inspection or for
// collecting prompt/reply pairs, so records are never rewritten.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Record captures a single run. Codex and Claude are pointers so a
// relay that never ran serializes as null, distinguishable from a
// relay that returned an empty reply.
type Record struct {
	Prompt string  `json:"prompt"`
	Qwen   string  `json:"qwen"`
	Codex  *string `json:"codex"`
	Claude *string `json:"claude"`
}

// Append writes rec as one JSON line at the end of the file at path,
// creating parent directories as needed.
func Append(path string, rec *Record) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}
