// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: usage/usage.go
// Summary: SQLite-backed per-app state: launch counts and hidden flags.
// Usage: Opened once at startup; the drawer records launches and hidden
// toggles, and sorts the grid by launch count.

package usage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// hidden is NULL until the user toggles visibility, so an explicit
// "visible" override survives alongside a .desktop NoDisplay flag.
const schema = `
CREATE TABLE IF NOT EXISTS app_state (
	id           TEXT PRIMARY KEY,
	launch_count INTEGER NOT NULL DEFAULT 0,
	hidden       INTEGER
);
`

// Store persists per-app drawer state keyed by desktop-file id.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the state database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordLaunch increments the launch count for an app.
func (s *Store) RecordLaunch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO app_state (id, launch_count) VALUES (?, 1)
		ON CONFLICT(id) DO UPDATE SET launch_count = launch_count + 1`, id)
	return err
}

// Counts returns the launch count for every known app.
func (s *Store) Counts() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, launch_count FROM app_state WHERE launch_count > 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// SetHidden stores a user hidden override for an app.
func (s *Store) SetHidden(id string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO app_state (id, hidden) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET hidden = excluded.hidden`, id, boolToInt(hidden))
	return err
}

// Hidden returns every explicit visibility override, hidden or visible.
// Apps the user never toggled are absent, so their .desktop flag applies.
func (s *Store) Hidden() (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, hidden FROM app_state WHERE hidden IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hidden := make(map[string]bool)
	for rows.Next() {
		var id string
		var h int
		if err := rows.Scan(&id, &h); err != nil {
			return nil, err
		}
		hidden[id] = h != 0
	}
	return hidden, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
