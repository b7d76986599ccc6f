package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"pricewatch-engine/internal/domain"
)

// ErrNoSnapshot is returned when the cache has never been filled.
var ErrNoSnapshot = errors.New("no cached catalog snapshot")

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS model_snapshots (
  id TEXT PRIMARY KEY,
  fetched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS models (
  snapshot_id TEXT NOT NULL REFERENCES model_snapshots(id) ON DELETE CASCADE,
  pos INTEGER NOT NULL,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  provider TEXT NOT NULL,
  input_price REAL NOT NULL,
  output_price REAL NOT NULL,
  context_window INTEGER NOT NULL,
  modality TEXT NOT NULL,
  PRIMARY KEY (snapshot_id, pos)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSnapshot replaces the cached catalog with a fresh one. Source
// order is preserved through the pos column; only the newest snapshot
// is kept.
func SaveSnapshot(ctx context.Context, db *sql.DB, models []domain.ProcessedModel, fetchedAt time.Time) (string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models;`); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM model_snapshots;`); err != nil {
		return "", err
	}

	snapID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO model_snapshots(id, fetched_at) VALUES(?, ?);`,
		snapID, fetchedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return "", err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO models(snapshot_id, pos, id, name, provider, input_price, output_price, context_window, modality)
VALUES(?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, m := range models {
		if _, err := stmt.ExecContext(ctx,
			snapID, i, m.ID, m.Name, m.Provider, m.InputPrice, m.OutputPrice, m.ContextWindow, m.Modality,
		); err != nil {
			return "", err
		}
	}

	return snapID, tx.Commit()
}

// LoadSnapshot returns the cached catalog in source order, plus when it
// was fetched.
func LoadSnapshot(ctx context.Context, db *sql.DB) ([]domain.ProcessedModel, time.Time, error) {
	var fetchedStr string
	err := db.QueryRowContext(ctx,
		`SELECT fetched_at FROM model_snapshots LIMIT 1;`,
	).Scan(&fetchedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	fetchedAt, err := time.Parse(time.RFC3339, fetchedStr)
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, name, provider, input_price, output_price, context_window, modality
FROM models
ORDER BY pos;`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var out []domain.ProcessedModel
	for rows.Next() {
		var m domain.ProcessedModel
		if err := rows.Scan(&m.ID, &m.Name, &m.Provider, &m.InputPrice, &m.OutputPrice, &m.ContextWindow, &m.Modality); err != nil {
			return nil, time.Time{}, err
		}
		out = append(out, m)
	}
	return out, fetchedAt, rows.Err()
}
