package eventlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lumenshow-eventlog-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("Valid Log Creation", func(t *testing.T) {
		dbPath := filepath.Join(tempDir, "events.db")
		l, err := New(dbPath, 100)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		defer l.Close()

		if l.dbPath != dbPath {
			t.Errorf("Expected dbPath %s, got %s", dbPath, l.dbPath)
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("Expected database file to be created")
		}
	})

	t.Run("Nested Directory Creation", func(t *testing.T) {
		dbPath := filepath.Join(tempDir, "nested", "dir", "events.db")
		l, err := New(dbPath, 100)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		defer l.Close()

		if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
			t.Error("Expected nested directory to be created")
		}
	})

	t.Run("Tables Created", func(t *testing.T) {
		dbPath := filepath.Join(tempDir, "schema.db")
		l, err := New(dbPath, 100)
		if err != nil {
			t.Fatalf("Failed to create log: %v", err)
		}
		defer l.Close()

		var count int
		err = l.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='events'").Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected events table to exist, got count %d", count)
		}
	})
}

func TestRecordAndRecent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lumenshow-eventlog-record-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "record.db")
	l, err := New(dbPath, 1000)
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}
	defer l.Close()

	if err := l.Record(KindPlay, "primary=opener"); err != nil {
		t.Fatalf("Failed to record event: %v", err)
	}
	if err := l.Record(KindStaleHandle, "effect handle stale"); err != nil {
		t.Fatalf("Failed to record event: %v", err)
	}

	events, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Failed to fetch recent events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Kind != KindStaleHandle {
		t.Errorf("Expected newest event first (stale_handle), got %s", events[0].Kind)
	}
	if events[1].Kind != KindPlay {
		t.Errorf("Expected second event play, got %s", events[1].Kind)
	}
}

func TestRecordTrimsOldEvents(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lumenshow-eventlog-trim-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "trim.db")
	l, err := New(dbPath, 3)
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}
	defer l.Close()

	for i := 0; i < 5; i++ {
		if err := l.Record(KindSeek, "tick"); err != nil {
			t.Fatalf("Failed to record event %d: %v", i, err)
		}
	}

	events, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Failed to fetch events: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("Expected events trimmed to max 3, got %d", len(events))
	}
}

func TestNilLogIsSafe(t *testing.T) {
	var l *Log

	if err := l.Record(KindPlay, "noop"); err != nil {
		t.Errorf("Expected nil-safe Record to return no error, got: %v", err)
	}
	events, err := l.Recent(10)
	if err != nil {
		t.Errorf("Expected nil-safe Recent to return no error, got: %v", err)
	}
	if events != nil {
		t.Errorf("Expected nil-safe Recent to return nil slice, got %v", events)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Expected nil-safe Close to return no error, got: %v", err)
	}
}
