// Package results defines the parsed endurance-run results and loads them from disk.
package results

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/steepleherder/internal/schema"
)

// Aggregated is the run-level output of the steeplechase log parser.
// The three top-level counters are nil when the parser could not determine them.
type Aggregated struct {
	TotalFailed    *int64   `json:"total failed"`
	TotalPassed    *int64   `json:"total passed"`
	SessionRuntime *int64   `json:"session runtime"`
	Clients        []Client `json:"clients"`
}

// Client holds the counters reported for one participant of the run.
// Failure entries are opaque; they are counted, never inspected.
type Client struct {
	Name            string            `json:"name"`
	Blocks          int64             `json:"blocks"`
	FailedBlocks    []json.RawMessage `json:"failed blocks"`
	LongestPass     int64             `json:"longest pass"`
	SessionRuntime  int64             `json:"session runtime"`
	SessionFailures []json.RawMessage `json:"session failures"`
	SetupFailures   []json.RawMessage `json:"setup failures"`
	CleanupFailures []json.RawMessage `json:"cleanup failures"`
}

// File holds a loaded results file with its raw bytes and decoded content.
type File struct {
	FilePath string
	Raw      []byte
	Hash     string
	Results  Aggregated
}

// Load reads a results file, validates it against the results schema and decodes it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("results.Load: %w", err)
	}
	agg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("results.Load: %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		FilePath: path,
		Raw:      data,
		Hash:     fmt.Sprintf("sha256:%x", h),
		Results:  *agg,
	}, nil
}

// Parse validates and decodes results JSON.
func Parse(data []byte) (*Aggregated, error) {
	if err := schema.ValidateResults(data); err != nil {
		return nil, err
	}
	var agg Aggregated
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&agg); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return &agg, nil
}

// Int64 returns a pointer to v, for building optional counters.
func Int64(v int64) *int64 { return &v }
