package storage

import (
	"context"
	"errors"
	"fmt"

	"studyflow/internal/config"
	"studyflow/internal/models"
)

// HistoryStore is the durable, append-only request/response log.
type HistoryStore interface {
	// Append persists rec (its ID is ignored) and returns it with the assigned id.
	Append(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error)
	// Recent returns at most limit records ordered by id descending.
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Close() error
}

var ErrInvalidLimit = errors.New("limit must be positive")

// Open builds the history store selected by cfg.HistoryDriver and bootstraps its schema.
func Open(ctx context.Context, cfg config.Config) (HistoryStore, error) {
	switch cfg.HistoryDriver {
	case config.HistoryDriverPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("STUDYFLOW_POSTGRES_URL is required for the postgres history driver")
		}
		db, err := NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		repo := NewHistoryRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	case config.HistoryDriverSQLite, "":
		return NewSQLiteHistoryStore(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.HistoryDriver)
	}
}
