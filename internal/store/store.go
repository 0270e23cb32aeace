// Package store persists game state (histories, scores, settings) as a
// small key/value table in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "mixera"
	dbFileName = "mixera.db"
)

// KV is the persistence contract the game components depend on. Set is
// best-effort: callers do not treat a failed write as fatal.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Store is a SQLite-backed KV.
type Store struct {
	db *sql.DB
}

// Verify implementations at compile time.
var (
	_ KV = (*Store)(nil)
	_ KV = (*Memory)(nil)
)

// Open opens the store at the default XDG data location.
func Open() (*Store, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt opens the store at an explicit path.
func OpenAt(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS game_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key, or false if absent.
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM game_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	_, _ = s.db.Exec(`
		INSERT INTO game_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
}

// GetJSON decodes the stored value for key into v. A missing or malformed
// value is reported as absent, never as a startup failure.
func GetJSON(kv KV, key string, v any) bool {
	raw, ok := kv.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key.
func SetJSON(kv KV, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	kv.Set(key, string(raw))
}

// Memory is an in-memory KV for tests.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.values[key] = value
}
