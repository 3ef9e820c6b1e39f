// Package eventlog provides SQLite-backed append-only storage of engine
// diagnostics (SPEC_FULL.md §4.14): stale-handle occurrences, dropped-audio
// counters, and playback transitions. It stores nothing about sequences,
// effects, or clips — only operational telemetry, the role js8d's
// MessageStore played for received messages.
package eventlog

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Kind enumerates the events the engine records.
type Kind string

const (
	KindStaleHandle            Kind = "stale_handle"
	KindAudioDeviceUnavailable Kind = "audio_device_unavailable"
	KindDroppedSamples         Kind = "dropped_samples"
	KindPlay                   Kind = "play"
	KindPause                  Kind = "pause"
	KindSeek                   Kind = "seek"
	KindLoop                   Kind = "loop"
)

// Event is one append-only diagnostics row.
type Event struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	Detail    string    `json:"detail"`
}

// Log is the SQLite-backed event store.
type Log struct {
	db        *sql.DB
	dbPath    string
	maxEvents int
}

// New creates a new event log with a SQLite backend at dbPath, bounded to
// maxEvents rows. A zero or negative maxEvents disables bounding.
func New(dbPath string, maxEvents int) (*Log, error) {
	l := &Log{dbPath: dbPath, maxEvents: maxEvents}
	if err := l.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize event log: %w", err)
	}
	return l, nil
}

func (l *Log) initialize() error {
	if l.dbPath == "" {
		l.dbPath = "./lumenshow-events.db"
	}
	if dir := filepath.Dir(l.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	connectionString := l.dbPath + "?_busy_timeout=10000&_journal_mode=WAL&_foreign_keys=on"
	db, err := sql.Open("sqlite3", connectionString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	l.db = db

	if err := l.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := l.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Printf("Event log initialized: %s (max %d events)", l.dbPath, l.maxEvents)
	return nil
}

func (l *Log) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		kind TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := l.db.Exec(schema)
	return err
}

func (l *Log) createIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind)",
	}
	for _, indexSQL := range indexes {
		if _, err := l.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Record appends one event and, if over the configured limit, trims the
// oldest rows. A nil *Log is a safe no-op, so construction failure never
// breaks the engine.
func (l *Log) Record(kind Kind, detail string) error {
	if l == nil {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO events (timestamp, kind, detail) VALUES (?, ?, ?)",
		time.Now(), string(kind), detail,
	); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if err := l.trimOldEvents(tx); err != nil {
		log.Printf("Warning: failed to trim old events: %v", err)
	}

	return tx.Commit()
}

func (l *Log) trimOldEvents(tx *sql.Tx) error {
	if l.maxEvents <= 0 {
		return nil
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return err
	}
	if count <= l.maxEvents {
		return nil
	}

	deleteCount := count - l.maxEvents
	_, err := tx.Exec(`
		DELETE FROM events
		WHERE id IN (
			SELECT id FROM events ORDER BY timestamp ASC LIMIT ?
		)
	`, deleteCount)
	return err
}

// Recent returns up to limit most-recent events, newest first. A nil *Log
// returns an empty slice.
func (l *Log) Recent(limit int) ([]Event, error) {
	if l == nil {
		return nil, nil
	}

	query := "SELECT id, timestamp, kind, detail FROM events ORDER BY timestamp DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.Timestamp, &kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Kind = Kind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the underlying database connection. A nil *Log is a safe
// no-op.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}
