package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "tutorsync.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dirs", "tutorsync.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("nested directories were not created")
	}
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.ChatMessages != 0 || stats.QuizAttempts != 0 {
		t.Errorf("empty db reported %d messages, %d attempts", stats.ChatMessages, stats.QuizAttempts)
	}

	if _, err := db.InsertMessage(&models.ChatMessage{ChildID: 1, SessionID: 1, Query: "q", Timestamp: nowMillis(), Synced: true}); err != nil {
		t.Fatalf("InsertMessage() error = %v", err)
	}
	if _, err := db.InsertAttempt(&models.QuizAttempt{ChildID: 1, QuizID: 42, Timestamp: nowMillis()}); err != nil {
		t.Fatalf("InsertAttempt() error = %v", err)
	}

	stats, err = db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.ChatMessages != 1 {
		t.Errorf("ChatMessages = %d, want 1", stats.ChatMessages)
	}
	if stats.QuizAttempts != 1 {
		t.Errorf("QuizAttempts = %d, want 1", stats.QuizAttempts)
	}
	if stats.PendingMessages != 0 {
		t.Errorf("PendingMessages = %d, want 0", stats.PendingMessages)
	}
	if stats.PendingAttempts != 1 {
		t.Errorf("PendingAttempts = %d, want 1", stats.PendingAttempts)
	}
}
