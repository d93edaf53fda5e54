// Package iostate loads state files and keeps a local history of state
// snapshots in SQLite.
// This is an impure I/O package.
package iostate

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/tapadyen/internal/iofs"
	"github.com/gnames/tapadyen/pkg/state"
	_ "modernc.org/sqlite"
)

// ReadFile loads the state file given by --state. An empty path gives
// an empty state.
func ReadFile(path string) (*state.State, error) {
	if path == "" {
		return state.New(), nil
	}
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return state.Parse(data)
}

// Store is a SQLite file with every persisted state snapshot.
type Store struct {
	db *sql.DB
}

// Open opens or creates a checkpoint store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, OpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one writer
	db.SetMaxOpenConns(1)

	res := &Store{db: db}
	if err = res.migrate(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return res, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			currently_syncing TEXT,
			state TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_checkpoints_run ON checkpoints(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends a snapshot of a run.
func (s *Store) Save(ctx context.Context, runID string, st *state.State) error {
	data, err := st.Encode()
	if err != nil {
		return WriteError(runID, err)
	}

	var syncing sql.NullString
	if st.CurrentlySyncing != "" {
		syncing = sql.NullString{String: st.CurrentlySyncing, Valid: true}
	}

	q := `INSERT INTO checkpoints
		(run_id, currently_syncing, state, created_at)
		VALUES (?, ?, ?, ?)`
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, q, runID, syncing, string(data), now)
	if err != nil {
		return WriteError(runID, err)
	}
	return nil
}

// Latest returns the most recent snapshot, or an empty state when the
// store has none.
func (s *Store) Latest(ctx context.Context) (*state.State, error) {
	q := `SELECT state FROM checkpoints ORDER BY id DESC LIMIT 1`
	var data string
	err := s.db.QueryRowContext(ctx, q).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return state.New(), nil
	}
	if err != nil {
		return nil, ReadError(err)
	}
	return state.Parse([]byte(data))
}

// Count returns the number of snapshots of a run.
func (s *Store) Count(ctx context.Context, runID string) (int, error) {
	q := `SELECT count(*) FROM checkpoints WHERE run_id = ?`
	var res int
	if err := s.db.QueryRowContext(ctx, q, runID).Scan(&res); err != nil {
		return 0, ReadError(err)
	}
	return res, nil
}
