package prompts

import (
	"fmt"

	"studyflow/internal/models"
)

// FlashcardCount is requested from the model; the validator accepts any count.
const FlashcardCount = 5

const (
	summaryTemplate = "Summarize clearly in clean text.\n" +
		"Return plain prose only. Do not return JSON, markdown tables, or code fences.\n\n"

	flashcardsTemplate = "Create exactly %d flashcards in STRICT JSON array format.\n" +
		"Do not add explanations. Only return JSON.\n" +
		"Keys: front, back.\n" +
		"Each element must be an object with exactly these two string keys and no others.\n\n"

	timetableTemplate = "Create a 1-day study timetable in STRICT JSON array format.\n" +
		"Do not add explanations. Only return JSON.\n" +
		"Keys: time, activity.\n" +
		"Each element must be an object with exactly these two string keys and no others.\n\n"
)

// Build returns the exact instruction sent to the model for op. The study text always
// comes last so nothing after it can be mistaken for instructions.
func Build(op models.Operation, text string) (string, error) {
	switch op {
	case models.OpSummary:
		return summaryTemplate + text, nil
	case models.OpFlashcards:
		return fmt.Sprintf(flashcardsTemplate, FlashcardCount) + text, nil
	case models.OpTimetable:
		return timetableTemplate + text, nil
	default:
		return "", fmt.Errorf("no prompt template for operation %q", op)
	}
}
