package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/notes/internal/domain"
)

//go:embed schema.sql
var schema string

// CollectionKey is the fixed key the note collection is persisted under.
// An incompatible future schema gets a new key rather than rewriting
// this one in place.
const CollectionKey = "notes.v1"

// Store persists the whole note collection as a single JSON value in a
// local SQLite database. The store is an unreliable boundary: every
// operation degrades to a safe default instead of surfacing an error.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a Store backed by the database at dbPath
func New(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted collection. Missing data, an unreadable
// store, and a corrupt payload all degrade to an empty collection; the
// caller never sees an error.
func (s *Store) Load() []domain.Note {
	var raw string
	err := s.db.QueryRow(
		"SELECT value FROM collections WHERE key = ?",
		CollectionKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return []domain.Note{}
	}
	if err != nil {
		s.logger.Warn("load notes: store read failed",
			slog.String("key", CollectionKey),
			slog.String("error", err.Error()))
		return []domain.Note{}
	}

	var notes []domain.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		s.logger.Warn("load notes: corrupt payload",
			slog.String("key", CollectionKey),
			slog.String("error", err.Error()))
		return []domain.Note{}
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes
}

// Save replaces the persisted collection with the given one. A rejected
// write is logged and swallowed; whatever was last persisted stays intact.
func (s *Store) Save(notes []domain.Note) {
	raw, err := json.Marshal(notes)
	if err != nil {
		s.logger.Error("save notes: encode failed",
			slog.String("key", CollectionKey),
			slog.String("error", err.Error()))
		return
	}

	_, err = s.db.Exec(
		"INSERT INTO collections (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		CollectionKey, string(raw),
	)
	if err != nil {
		s.logger.Error("save notes: store write failed",
			slog.String("key", CollectionKey),
			slog.String("error", err.Error()))
	}
}

// Clear removes the persisted collection entirely
func (s *Store) Clear() {
	_, err := s.db.Exec("DELETE FROM collections WHERE key = ?", CollectionKey)
	if err != nil {
		s.logger.Error("clear notes: store delete failed",
			slog.String("key", CollectionKey),
			slog.String("error", err.Error()))
	}
}
