package storage

import (
	"context"
	"database/sql"
	"fmt"

	"studyflow/internal/models"
	"studyflow/internal/util"

	_ "modernc.org/sqlite"
)

const sqliteHistorySchema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	operation_kind TEXT NOT NULL,
	input_text TEXT NOT NULL,
	output_content TEXT NOT NULL
)`

// SQLiteHistoryStore is the embedded history store. The pool is capped at one
// connection so every write is serialized through a single writer.
type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(ctx context.Context, path string) (*SQLiteHistoryStore, error) {
	if err := util.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("prepare sqlite dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteHistoryStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteHistoryStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteHistorySchema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Append(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO history(timestamp, operation_kind, input_text, output_content)
VALUES (?, ?, ?, ?)`,
		rec.Timestamp, rec.OperationKind, rec.InputText, rec.OutputContent)
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("insert history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("read history id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (s *SQLiteHistoryStore) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, timestamp, operation_kind, input_text, output_content
FROM history
ORDER BY id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.OperationKind, &rec.InputText, &rec.OutputContent); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}
