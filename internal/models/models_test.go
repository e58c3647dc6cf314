package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation(" Flashcards ")
	require.NoError(t, err)
	require.Equal(t, OpFlashcards, op)

	_, err = ParseOperation("quiz")
	require.Error(t, err)
}

func TestRequiredKeys(t *testing.T) {
	require.Equal(t, []string{"front", "back"}, OpFlashcards.RequiredKeys())
	require.Equal(t, []string{"time", "activity"}, OpTimetable.RequiredKeys())
	require.Nil(t, OpSummary.RequiredKeys())
	require.False(t, OpSummary.Structured())
}

func TestResultMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Result{Operation: OpFlashcards})
	require.NoError(t, err)
	require.JSONEq(t, `{"flashcards":[]}`, string(b))

	b, err = json.Marshal(Result{Operation: OpSummary, Summary: "short"})
	require.NoError(t, err)
	require.JSONEq(t, `{"summary":"short"}`, string(b))

	b, err = json.Marshal(Result{Operation: OpTimetable, Timetable: []TimetableItem{{Time: "9:00", Activity: "Read"}}})
	require.NoError(t, err)
	require.JSONEq(t, `{"timetable":[{"time":"9:00","activity":"Read"}]}`, string(b))
}
