package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/storage"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Append(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(models.HistoryRecord), args.Error(1)
}

func (m *mockStore) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	args := m.Called(ctx, limit)
	recs, _ := args.Get(0).([]models.HistoryRecord)
	return recs, args.Error(1)
}

func (m *mockStore) Close() error { return nil }

func TestRecordStampsUTC(t *testing.T) {
	store, err := storage.NewSQLiteHistoryStore(context.Background(), filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer store.Close()

	r := NewRecorder(store)
	r.now = func() time.Time {
		return time.Date(2026, 3, 4, 10, 30, 0, 123, time.FixedZone("X", 3600))
	}

	rec, err := r.Record(context.Background(), models.OpFlashcards, "PDF: notes.pdf", `[{"front":"a","back":"b"}]`)
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)
	require.Equal(t, "2026-03-04T09:30:00.000000123Z", rec.Timestamp)
	require.Equal(t, "flashcards", rec.OperationKind)
	require.Equal(t, "PDF: notes.pdf", rec.InputText)

	recent, err := r.Recent(context.Background(), 20)
	require.NoError(t, err)
	require.Equal(t, []models.HistoryRecord{rec}, recent)
}

func TestRecentClampsLimit(t *testing.T) {
	store := &mockStore{}
	store.On("Recent", mock.Anything, 20).Return([]models.HistoryRecord{}, nil).Times(3)
	store.On("Recent", mock.Anything, 7).Return([]models.HistoryRecord{}, nil).Once()

	r := NewRecorder(store)
	for _, limit := range []int{0, -3, 500, 7} {
		_, err := r.Recent(context.Background(), limit)
		require.NoError(t, err)
	}
	store.AssertExpectations(t)
}

func TestRecordPropagatesStoreError(t *testing.T) {
	store := &mockStore{}
	store.On("Append", mock.Anything, mock.Anything).Return(models.HistoryRecord{}, errors.New("disk full"))

	_, err := NewRecorder(store).Record(context.Background(), models.OpSummary, "text", "out")
	require.ErrorContains(t, err, "disk full")
}
