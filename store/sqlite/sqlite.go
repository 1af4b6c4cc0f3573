/*
Package sqlite provides the SQLite-backed Store.

PURPOSE:
  Persists the tracker's typed collections as key-value rows: one row per
  collection, JSON payload, replaced wholesale on every save. That matches
  the engine's write-through model - a mutation always persists the full
  collection, so there is nothing to merge and no partial commit to
  recover from.

SCHEMA:
  collections(key TEXT PRIMARY KEY, payload TEXT, updated_at TEXT)

DECODE RECOVERY:
  A missing row or a payload that fails to decode resolves to an empty
  collection (or default settings). Corruption of one collection never
  takes the application down; it costs that collection only.

WAL MODE:
  The database opens with WAL journaling so the read-only widget surface
  can load a snapshot from the same file while the tracker writes.

USAGE:
  st, err := sqlite.New("./worktracker.db")
  if err != nil { ... }
  defer st.Close()
  tr, err := tracker.Open(ctx, st)
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomsp05/worktracker/track"
)

// Store implements track.Store on a single SQLite file.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database. Use ":memory:" for an in-memory
// database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// KEY-VALUE PRIMITIVES
// =============================================================================

func (s *Store) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// load fetches and decodes the payload for key. Absent rows and payloads
// that fail to decode resolve to fallback; decoding happens into a local
// copy, so a half-decoded value is never returned.
func load[T any](ctx context.Context, s *Store, key string, fallback T) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("load %s: %w", key, err)
	}
	decoded := fallback
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		// Decode failures are recovered locally, not surfaced.
		return fallback, nil
	}
	return decoded, nil
}

// =============================================================================
// track.Store
// =============================================================================

func (s *Store) LoadJobs(ctx context.Context) ([]track.Job, error) {
	return load[[]track.Job](ctx, s, track.KeyJobs, nil)
}

func (s *Store) SaveJobs(ctx context.Context, jobs []track.Job) error {
	return s.save(ctx, track.KeyJobs, jobs)
}

func (s *Store) LoadShifts(ctx context.Context) ([]track.WorkShift, error) {
	return load[[]track.WorkShift](ctx, s, track.KeyShifts, nil)
}

func (s *Store) SaveShifts(ctx context.Context, shifts []track.WorkShift) error {
	return s.save(ctx, track.KeyShifts, shifts)
}

func (s *Store) LoadSchedules(ctx context.Context) ([]track.PaySchedule, error) {
	return load[[]track.PaySchedule](ctx, s, track.KeySchedules, nil)
}

func (s *Store) SaveSchedules(ctx context.Context, schedules []track.PaySchedule) error {
	return s.save(ctx, track.KeySchedules, schedules)
}

func (s *Store) LoadPayslips(ctx context.Context) ([]track.Payslip, error) {
	return load[[]track.Payslip](ctx, s, track.KeyPayslips, nil)
}

func (s *Store) SavePayslips(ctx context.Context, payslips []track.Payslip) error {
	return s.save(ctx, track.KeyPayslips, payslips)
}

func (s *Store) LoadSettings(ctx context.Context) (track.Settings, error) {
	return load(ctx, s, track.KeySettings, track.DefaultSettings())
}

func (s *Store) SaveSettings(ctx context.Context, settings track.Settings) error {
	return s.save(ctx, track.KeySettings, settings)
}
