// Package sqlite implements the SQLite store behind the sandbox emulator. It
// keeps comments and metadata templates in a single database file inside a
// data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "sandbox.db"

// Store lifecycle and lookup errors.
var (
	ErrStoreClosed  = errors.New("store is closed")
	ErrAlreadyOpen  = errors.New("store is already open")
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("template key already exists in scope")
)

// Store owns the database handle and the table accessors.
type Store struct {
	mu        sync.RWMutex
	open      bool
	db        *sql.DB
	comments  *CommentsTable
	templates *TemplatesTable
}

// NewStore returns a closed store. Call Open before use.
func NewStore() *Store {
	return &Store{}
}

// Open creates dataDir if needed, opens or creates the database, and applies
// the schema. An empty dataDir means the current directory. Existing data is
// kept across Open calls.
func (s *Store) Open(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return err
	}
	// A single connection serializes writers; SQLite allows one at a time.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	s.db = db
	s.open = true
	s.comments = &CommentsTable{store: s}
	s.templates = &TemplatesTable{store: s}
	return nil
}

// Close releases the database. It is idempotent. After Close, table
// operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	s.comments = nil
	s.templates = nil
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	return nil
}

// Comments returns the comments table.
func (s *Store) Comments() (*CommentsTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, ErrStoreClosed
	}
	return s.comments, nil
}

// Templates returns the metadata templates table.
func (s *Store) Templates() (*TemplatesTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, ErrStoreClosed
	}
	return s.templates, nil
}

// NewID generates a UUID v7 for records and template fields.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
