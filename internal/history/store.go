// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of submitted queries and their
// outcomes.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Status is the outcome of a recorded query.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// ErrNotFound is returned by Get for an unknown entry ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded query.
type Entry struct {
	ID    string `json:"id" yaml:"id"`
	Query string `json:"query" yaml:"query"`
	// Endpoint is the URL the query was sent to, or "mock".
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Status   Status `json:"status" yaml:"status"`
	// Response is the raw JSON answer for successful queries.
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
	// Error is the error text for failed queries.
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Store manages the history database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// Open opens or creates dir/history.db.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			query TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			status TEXT NOT NULL,
			response TEXT,
			error TEXT,
			duration_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e, assigning an ID and timestamp when they are empty, and
// returns the stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (id, query, endpoint, status, response, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Query, e.Endpoint, string(e.Status), e.Response, e.Error,
		e.Duration.Milliseconds(), e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording query: %w", err)
	}
	return e, nil
}

// List returns the most recent entries, newest first. A limit of zero uses
// the store default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx,
		`SELECT id, query, endpoint, status, response, error, duration_ms, created_at
		 FROM queries ORDER BY rowid DESC LIMIT ?`, s.limit(limit))
}

// Search returns entries whose query text contains text (case-insensitive),
// newest first.
func (s *Store) Search(ctx context.Context, text string, limit int) ([]Entry, error) {
	return s.query(ctx,
		`SELECT id, query, endpoint, status, response, error, duration_ms, created_at
		 FROM queries WHERE instr(lower(query), lower(?)) > 0
		 ORDER BY rowid DESC LIMIT ?`, text, s.limit(limit))
}

// Get returns the entry with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	entries, err := s.query(ctx,
		`SELECT id, query, endpoint, status, response, error, duration_ms, created_at
		 FROM queries WHERE id = ?`, id)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entries[0], nil
}

// Clear deletes all entries and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM queries`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) limit(n int) int {
	if n <= 0 {
		return s.maxResults
	}
	return n
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			status     string
			response   sql.NullString
			errText    sql.NullString
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.Query, &e.Endpoint, &status, &response, &errText, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Status = Status(status)
		e.Response = response.String
		e.Error = errText.String
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
