package extract

import (
	"testing"

	"studyflow/internal/models"

	"github.com/stretchr/testify/require"
)

func TestExtractDiscardsSurroundingProse(t *testing.T) {
	res, err := Extract(models.OpFlashcards, `Here you go: [{"front":"Q","back":"A"}] thanks`)
	require.NoError(t, err)
	require.Equal(t, `[{"front":"Q","back":"A"}]`, res.Span)
	require.Len(t, res.Records, 1)

	typed, err := Validate(res)
	require.NoError(t, err)
	require.Equal(t, []models.Flashcard{{Front: "Q", Back: "A"}}, typed.Flashcards)
}

func TestExtractCodeFence(t *testing.T) {
	raw := "```json\n[{\"time\":\"09:00\",\"activity\":\"Read\"},{\"time\":\"10:00\",\"activity\":\"Quiz\"}]\n```"
	res, err := Extract(models.OpTimetable, raw)
	require.NoError(t, err)
	typed, err := Validate(res)
	require.NoError(t, err)
	require.Equal(t, []models.TimetableItem{{Time: "09:00", Activity: "Read"}, {Time: "10:00", Activity: "Quiz"}}, typed.Timetable)
}

func TestExtractNoBrackets(t *testing.T) {
	_, err := Extract(models.OpFlashcards, "I cannot help with that.")
	require.ErrorIs(t, err, ErrNoArray)
	require.Equal(t, "no structured array found", err.Error())
}

func TestExtractReversedBrackets(t *testing.T) {
	_, err := Extract(models.OpTimetable, "] nothing here [")
	require.ErrorIs(t, err, ErrNoArray)
}

func TestExtractMalformedSpan(t *testing.T) {
	_, err := Extract(models.OpFlashcards, `[{"front":"Q","back":}]`)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestExtractGreedySpanOverMatchesTwoArrays(t *testing.T) {
	raw := `first [{"front":"a","back":"b"}] and second [{"front":"c","back":"d"}]`
	_, err := Extract(models.OpFlashcards, raw)
	require.ErrorIs(t, err, ErrMalformed)

	span, ok := BracketSpan(raw)
	require.True(t, ok)
	require.Equal(t, `[{"front":"a","back":"b"}] and second [{"front":"c","back":"d"}]`, span)
}

func TestExtractEmptyResponse(t *testing.T) {
	_, err := Extract(models.OpSummary, "  \n\t ")
	require.ErrorIs(t, err, ErrEmptyResponse)
	_, err = Extract(models.OpFlashcards, "")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractSummaryIsVerbatimTrimmed(t *testing.T) {
	res, err := Extract(models.OpSummary, "\n  Cells divide [sometimes].  \n")
	require.NoError(t, err)
	require.Equal(t, "Cells divide [sometimes].", res.Prose)
	require.Nil(t, res.Records)
}

func TestExtractEmptyArray(t *testing.T) {
	res, err := Extract(models.OpFlashcards, "[]")
	require.NoError(t, err)
	typed, err := Validate(res)
	require.NoError(t, err)
	require.Empty(t, typed.Flashcards)
}
