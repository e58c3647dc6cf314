package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"studyflow/internal/models"
)

var (
	ErrEmptyResponse  = errors.New("empty response from model")
	ErrNoArray        = errors.New("no structured array found")
	ErrMalformed      = errors.New("malformed structured output")
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Result is what the extractor recovered from one model answer: prose for summaries,
// or the raw elements of a JSON array for structured operations.
type Result struct {
	Operation models.Operation
	Prose     string
	Records   []json.RawMessage
	// Span is the exact bracket span that was parsed.
	Span string
}

// Extract recovers the payload for op from raw model output. Structured operations use
// the bracket span from the first '[' to the last ']', so leading and trailing chatter
// (including code fences) is discarded. When the answer holds several arrays the span
// covers all of them and fails to parse; that over-match is intentional.
func Extract(op models.Operation, raw string) (Result, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}, ErrEmptyResponse
	}
	if !op.Structured() {
		if !op.Valid() {
			return Result{}, fmt.Errorf("extract: unknown operation %q", op)
		}
		return Result{Operation: op, Prose: trimmed}, nil
	}

	span, ok := BracketSpan(trimmed)
	if !ok {
		return Result{}, ErrNoArray
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(span), &records); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Result{Operation: op, Records: records, Span: span}, nil
}

// BracketSpan returns raw[first '[' : last ']'+1].
func BracketSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}
