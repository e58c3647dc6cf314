package storage

import (
	"context"
	"fmt"
	"strings"

	"studyflow/internal/models"
)

const postgresHistorySchema = `
CREATE TABLE IF NOT EXISTS history (
	id BIGSERIAL PRIMARY KEY,
	timestamp TEXT NOT NULL,
	operation_kind TEXT NOT NULL,
	input_text TEXT NOT NULL,
	output_content TEXT NOT NULL
)`

// HistoryRepo stores history rows in Postgres. Ids come from the BIGSERIAL sequence so
// concurrent appends never collide.
type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, postgresHistorySchema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Append(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error) {
	// Postgres TEXT rejects NUL bytes.
	rec.InputText = strings.ReplaceAll(rec.InputText, "\x00", "")
	rec.OutputContent = strings.ReplaceAll(rec.OutputContent, "\x00", "")
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO history(timestamp, operation_kind, input_text, output_content)
VALUES ($1, $2, $3, $4)
RETURNING id`,
		rec.Timestamp, rec.OperationKind, rec.InputText, rec.OutputContent).Scan(&rec.ID)
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("insert history: %w", err)
	}
	return rec, nil
}

func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, timestamp, operation_kind, input_text, output_content
FROM history
ORDER BY id DESC
LIMIT $1`, limit)
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

func (r *HistoryRepo) Close() error {
	r.db.Close()
	return nil
}
