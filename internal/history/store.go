// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the recent-searches list in SQLite so it
// survives across sessions. Entries are partitioned by profile.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// ErrClosed is returned by every operation on a closed Store.
var ErrClosed = errors.New("history store closed")

const (
	defaultProfile = "default"
	defaultKeep    = 10
)

// Entry is one recorded search.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Query      string    `json:"query" yaml:"query"`
	SearchedAt time.Time `json:"searched_at" yaml:"searched_at"`
}

// Store manages the history database.
type Store struct {
	db      *sql.DB
	profile string
	keep    int
	now     func() time.Time
	closed  atomic.Bool
}

// Open opens or creates the database at cfg.DBPath. An empty path keeps
// history in memory for the life of the Store.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dsn := ":memory:"
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		dsn = cfg.DBPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:      db,
		profile: cfg.Profile,
		keep:    cfg.Size,
		now:     time.Now,
	}
	if s.profile == "" {
		s.profile = defaultProfile
	}
	if s.keep <= 0 {
		s.keep = defaultKeep
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			profile TEXT NOT NULL,
			query TEXT NOT NULL,
			searched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_profile ON searches(profile, seq)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Push records q as the most recent search, removing any earlier entry for
// the same query and pruning entries beyond the configured size.
func (s *Store) Push(ctx context.Context, q string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM searches WHERE profile = ? AND query = ?`, s.profile, q,
	); err != nil {
		return fmt.Errorf("removing earlier entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO searches (id, profile, query, searched_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), s.profile, q, s.now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM searches WHERE profile = ? AND seq NOT IN (
			SELECT seq FROM searches WHERE profile = ? ORDER BY seq DESC LIMIT ?
		)`, s.profile, s.profile, s.keep,
	); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	return tx.Commit()
}

// Entries returns up to n entries, most recent first.
func (s *Store) Entries(ctx context.Context, n int) ([]Entry, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if n <= 0 {
		n = s.keep
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, searched_at FROM searches WHERE profile = ? ORDER BY seq DESC LIMIT ?`,
		s.profile, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Query, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.SearchedAt, _ = time.Parse(time.RFC3339Nano, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recent returns up to n queries, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]string, error) {
	entries, err := s.Entries(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Query
	}
	return out, nil
}

// Clear deletes every entry for the store's profile.
func (s *Store) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM searches WHERE profile = ?`, s.profile); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
