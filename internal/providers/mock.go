package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockProvider returns deterministic, operation-shaped answers. Structured answers are
// wrapped in chatter and a code fence the way real models often reply.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	topic := mockTopic(req.Prompt)
	switch strings.ToLower(req.Operation) {
	case "flashcards":
		cards := make([]map[string]string, 0, 5)
		for i := 1; i <= 5; i++ {
			cards = append(cards, map[string]string{
				"front": fmt.Sprintf("Key idea %d about %s?", i, topic),
				"back":  fmt.Sprintf("Deterministic answer %d.", i),
			})
		}
		b, err := json.Marshal(cards)
		if err != nil {
			return GenerateResponse{}, info, fmt.Errorf("encode mock flashcards: %w", err)
		}
		return GenerateResponse{Text: "Here are your flashcards:\n```json\n" + string(b) + "\n```\nGood luck!"}, info, nil
	case "timetable":
		b, err := json.Marshal([]map[string]string{
			{"time": "09:00", "activity": "Review " + topic},
			{"time": "11:00", "activity": "Practice problems"},
			{"time": "14:00", "activity": "Self-test with flashcards"},
		})
		if err != nil {
			return GenerateResponse{}, info, fmt.Errorf("encode mock timetable: %w", err)
		}
		return GenerateResponse{Text: "Sure:\n" + string(b)}, info, nil
	default:
		return GenerateResponse{Text: "Mock summary of " + topic + "."}, info, nil
	}
}

// mockTopic picks the last non-empty prompt line, which is where the study text ends up,
// with whitespace runs collapsed.
func mockTopic(prompt string) string {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.Join(strings.Fields(lines[i]), " ")
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 40 {
			line = string(r[:40])
		}
		return line
	}
	return "the material"
}
