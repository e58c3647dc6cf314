package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"studyflow/internal/models"
)

// Validate maps an extraction result onto the operation's typed records. A single bad
// element fails the whole result; there is no partial acceptance.
func Validate(res Result) (models.Result, error) {
	out := models.Result{Operation: res.Operation}
	switch res.Operation {
	case models.OpSummary:
		out.Summary = res.Prose
		return out, nil
	case models.OpFlashcards:
		cards, err := decodeRecords(res.Records, res.Operation.RequiredKeys(), func(f map[string]string) models.Flashcard {
			return models.Flashcard{Front: f["front"], Back: f["back"]}
		})
		if err != nil {
			return models.Result{}, err
		}
		out.Flashcards = cards
		return out, nil
	case models.OpTimetable:
		items, err := decodeRecords(res.Records, res.Operation.RequiredKeys(), func(f map[string]string) models.TimetableItem {
			return models.TimetableItem{Time: f["time"], Activity: f["activity"]}
		})
		if err != nil {
			return models.Result{}, err
		}
		out.Timetable = items
		return out, nil
	default:
		return models.Result{}, fmt.Errorf("validate: unknown operation %q", res.Operation)
	}
}

func decodeRecords[T any](raw []json.RawMessage, keys []string, build func(map[string]string) T) ([]T, error) {
	out := make([]T, 0, len(raw))
	for i, elem := range raw {
		fields, err := decodeObject(elem, keys)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrSchemaMismatch, i, err)
		}
		out = append(out, build(fields))
	}
	return out, nil
}

// decodeObject requires elem to be a JSON object whose key set is exactly keys and whose
// values are all strings.
func decodeObject(elem json.RawMessage, keys []string) (map[string]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("not an object")
	}
	for k := range obj {
		if !slices.Contains(keys, k) {
			return nil, fmt.Errorf("unexpected key %q", k)
		}
	}
	fields := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			return nil, fmt.Errorf("missing key %q", k)
		}
		// null unmarshals into a string without error, so check the literal first.
		v = bytes.TrimSpace(v)
		var s string
		if len(v) == 0 || v[0] != '"' || json.Unmarshal(v, &s) != nil {
			return nil, fmt.Errorf("key %q is not a string", k)
		}
		fields[k] = s
	}
	return fields, nil
}
