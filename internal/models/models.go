package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Operation string

const (
	OpSummary    Operation = "summary"
	OpFlashcards Operation = "flashcards"
	OpTimetable  Operation = "timetable"
)

var Operations = []Operation{OpSummary, OpFlashcards, OpTimetable}

func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if !op.Valid() {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

func (o Operation) Valid() bool {
	switch o {
	case OpSummary, OpFlashcards, OpTimetable:
		return true
	default:
		return false
	}
}

// Structured reports whether the operation expects a JSON array rather than prose.
func (o Operation) Structured() bool {
	return o == OpFlashcards || o == OpTimetable
}

// RequiredKeys is the exact key set each record of a structured operation must carry.
func (o Operation) RequiredKeys() []string {
	switch o {
	case OpFlashcards:
		return []string{"front", "back"}
	case OpTimetable:
		return []string{"time", "activity"}
	default:
		return nil
	}
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type TimetableItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Result is the typed payload of one completed operation. Only the field matching
// Operation is meaningful.
type Result struct {
	Operation  Operation
	Summary    string
	Flashcards []Flashcard
	Timetable  []TimetableItem
}

// Payload returns the value for the operation's response field. Record lists are never
// nil so an empty model answer encodes as [] rather than null.
func (r Result) Payload() any {
	switch r.Operation {
	case OpFlashcards:
		if r.Flashcards == nil {
			return []Flashcard{}
		}
		return r.Flashcards
	case OpTimetable:
		if r.Timetable == nil {
			return []TimetableItem{}
		}
		return r.Timetable
	default:
		return r.Summary
	}
}

// MarshalJSON encodes the result as {"<operation>": payload}.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{string(r.Operation): r.Payload()})
}

type ResolvedInput struct {
	Text       string `json:"text"`
	Provenance string `json:"provenance"`
}

type HistoryRecord struct {
	ID            int64  `json:"id"`
	Timestamp     string `json:"timestamp"`
	OperationKind string `json:"operation_kind"`
	InputText     string `json:"input_text"`
	OutputContent string `json:"output_content"`
}
