package history

import (
	"context"
	"time"

	"studyflow/internal/config"
	"studyflow/internal/models"
	"studyflow/internal/storage"
)

// Recorder timestamps completed operations and appends them to the history store.
type Recorder struct {
	store storage.HistoryStore
	now   func() time.Time
}

func NewRecorder(store storage.HistoryStore) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, op models.Operation, provenance, output string) (models.HistoryRecord, error) {
	return r.store.Append(ctx, models.HistoryRecord{
		Timestamp:     r.now().UTC().Format(time.RFC3339Nano),
		OperationKind: string(op),
		InputText:     provenance,
		OutputContent: output,
	})
}

// Recent returns up to limit records newest first. Limits outside 1..20 read as 20.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 || limit > config.MaxHistoryLimit {
		limit = config.MaxHistoryLimit
	}
	return r.store.Recent(ctx, limit)
}
