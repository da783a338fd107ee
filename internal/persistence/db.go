// Package persistence provides SQLite-based save storage. A playthrough
// is persisted as one JSON snapshot under a fixed slot so that save and
// load are idempotent full replacements.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/kingdoms/internal/state"
)

// slotMain is the single save slot.
const slotMain = "main"

// Store wraps a SQLite connection for playthrough persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		playthrough TEXT NOT NULL,
		turn INTEGER NOT NULL,
		snapshot TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// Save writes the full game snapshot into the main slot, replacing any
// previous save.
func (st *Store) Save(s *state.State) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = st.conn.Exec(`INSERT OR REPLACE INTO saves
		(slot, playthrough, turn, snapshot, saved_at)
		VALUES (?, ?, ?, ?, ?)`,
		slotMain, s.Playthrough, s.Turn, string(blob),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("game saved", "playthrough", s.Playthrough, "turn", s.Turn)
	return nil
}

// Load reads the main-slot snapshot. A missing or unreadable save is not
// an error: it reports ok=false and the caller starts fresh.
func (st *Store) Load() (*state.State, bool, error) {
	var blob string
	err := st.conn.Get(&blob, "SELECT snapshot FROM saves WHERE slot = ?", slotMain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var s state.State
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		slog.Warn("discarding malformed save", "err", err)
		return nil, false, nil
	}

	return &s, true, nil
}

// Delete clears the main save slot.
func (st *Store) Delete() error {
	_, err := st.conn.Exec("DELETE FROM saves WHERE slot = ?", slotMain)
	return err
}

// SaveMeta stores a key-value pair in game metadata.
func (st *Store) SaveMeta(key, value string) error {
	_, err := st.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (st *Store) GetMeta(key string) (string, error) {
	var value string
	err := st.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}
