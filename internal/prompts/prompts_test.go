package prompts

import (
	"strings"
	"testing"

	"studyflow/internal/models"

	"github.com/stretchr/testify/require"
)

func TestBuildFlashcards(t *testing.T) {
	p, err := Build(models.OpFlashcards, "Mitochondria are the powerhouse.")
	require.NoError(t, err)
	require.Contains(t, p, "exactly 5 flashcards")
	require.Contains(t, p, "STRICT JSON array")
	require.Contains(t, p, "Keys: front, back.")
	require.True(t, strings.HasSuffix(p, "\n\nMitochondria are the powerhouse."))
}

func TestBuildTimetable(t *testing.T) {
	p, err := Build(models.OpTimetable, "Exam on Friday")
	require.NoError(t, err)
	require.Contains(t, p, "1-day study timetable")
	require.Contains(t, p, "Keys: time, activity.")
	require.True(t, strings.HasSuffix(p, "Exam on Friday"))
}

func TestBuildSummaryAsksForPlainText(t *testing.T) {
	p, err := Build(models.OpSummary, "notes")
	require.NoError(t, err)
	require.Contains(t, p, "Do not return JSON")
	require.NotContains(t, p, "Keys:")
}

func TestBuildIsDeterministic(t *testing.T) {
	a, _ := Build(models.OpFlashcards, "same")
	b, _ := Build(models.OpFlashcards, "same")
	require.Equal(t, a, b)
}

func TestBuildUnknownOperation(t *testing.T) {
	_, err := Build(models.Operation("quiz"), "x")
	require.Error(t, err)
}
