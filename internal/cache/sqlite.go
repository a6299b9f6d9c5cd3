package cache

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore persists snapshots in a SQLite database: a single-row meta
// table carrying the fingerprint and provider metadata, and a vectors table
// with one row per (candidate, question) holding the vector as a
// little-endian float32 blob. Save replaces both tables in one transaction,
// which gives the same reader-never-sees-partial-state guarantee as the
// file store's rename.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	fingerprint TEXT NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	dimension INTEGER NOT NULL,
	questions INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_vectors (
	candidate_id TEXT NOT NULL,
	question_idx INTEGER NOT NULL,
	vector BLOB NOT NULL,
	PRIMARY KEY (candidate_id, question_idx)
);
`

// NewSQLiteStore opens (creating if needed) a snapshot database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// Single writer suits SQLite; matching runs serialize their saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the persisted snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Vectors: make(map[string][][]float32)}

	row := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, provider, model, dimension, questions FROM snapshot_meta WHERE id = 1`)
	err := row.Scan(&snap.Fingerprint, &snap.Provider, &snap.Model, &snap.Dimension, &snap.Questions)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT candidate_id, question_idx, vector FROM snapshot_vectors ORDER BY candidate_id, question_idx`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var candidateID string
		var questionIdx int
		var blob []byte
		if err := rows.Scan(&candidateID, &questionIdx, &blob); err != nil {
			return nil, fmt.Errorf("scan vector row: %w", err)
		}
		vecs := snap.Vectors[candidateID]
		if questionIdx != len(vecs) {
			return nil, fmt.Errorf("%w: question index gap for candidate %s", ErrCorrupt, candidateID)
		}
		snap.Vectors[candidateID] = append(vecs, deserializeVector(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(snap.Vectors) == 0 {
		return nil, fmt.Errorf("%w: meta row without vectors", ErrCorrupt)
	}
	return snap, nil
}

// Save replaces the stored snapshot wholesale in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta`); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_vectors`); err != nil {
		return fmt.Errorf("clear vectors: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, fingerprint, provider, model, dimension, questions) VALUES (1, ?, ?, ?, ?, ?)`,
		snap.Fingerprint, snap.Provider, snap.Model, snap.Dimension, snap.Questions); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_vectors (candidate_id, question_idx, vector) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare vector insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for candidateID, vecs := range snap.Vectors {
		for idx, vec := range vecs {
			if _, err := stmt.ExecContext(ctx, candidateID, idx, serializeVector(vec)); err != nil {
				return fmt.Errorf("insert vector %s/%d: %w", candidateID, idx, err)
			}
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
