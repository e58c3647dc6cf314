package storage

import (
	"context"
	"path/filepath"
	"testing"

	"studyflow/internal/config"

	"github.com/stretchr/testify/require"
)

func TestOpenSelectsDriver(t *testing.T) {
	cfg := config.Config{HistoryDriver: config.HistoryDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "h.db")}
	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()
	require.IsType(t, &SQLiteHistoryStore{}, store)

	_, err = Open(context.Background(), config.Config{HistoryDriver: config.HistoryDriverPostgres})
	require.ErrorContains(t, err, "STUDYFLOW_POSTGRES_URL")

	_, err = Open(context.Background(), config.Config{HistoryDriver: "mongo"})
	require.ErrorContains(t, err, "unknown history driver")
}
