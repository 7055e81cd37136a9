// Package analytics counts page visits without keeping raw IP addresses.
// Addresses are salted and hashed before they reach the database, Do Not
// Track is honoured, and rows older than the retention window are purged.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// timeLayout is what SQLite's date functions understand.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS contact_submissions (
	id TEXT PRIMARY KEY,
	success INTEGER NOT NULL,
	timestamp DATETIME NOT NULL
);
`

// Store persists visits and contact outcomes in SQLite.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db)
}

// OpenMemory creates an in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every new connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db, salt: randomSalt(), now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func randomSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Sprintf("generating salt: %v", err))
	}
	return hex.EncodeToString(b)
}

// HashIP is stable for one process: the same address always maps to the
// same 16 hex characters, but the salt is never stored.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

// Track records one page view.
func (s *Store) Track(ctx context.Context, ip, userAgent, path string) error {
	_, err := sq.Insert("visitors").
		Columns("hashed_ip", "user_agent", "path", "timestamp").
		Values(s.HashIP(ip), userAgent, path, s.now().UTC().Format(timeLayout)).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// RecordContact stores whether a contact submission went through.
func (s *Store) RecordContact(ctx context.Context, id string, success bool) error {
	ok := 0
	if success {
		ok = 1
	}
	_, err := sq.Insert("contact_submissions").
		Columns("id", "success", "timestamp").
		Values(id, ok, s.now().UTC().Format(timeLayout)).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("recording contact outcome: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than retention and returns how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).UTC().Format(timeLayout)
	res, err := sq.Delete("visitors").
		Where(sq.Lt{"timestamp": cutoff}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	return res.RowsAffected()
}
