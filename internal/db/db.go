// Package db provides the GORM-based local record store for TutorSync.
// It uses the pure-Go SQLite driver.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// DB wraps the GORM database connection with TutorSync-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults. A single open connection
// serializes writes per the store's no-lost-update requirement.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.ChatMessage{},
		&models.QuizAttempt{},
		&models.Credentials{},
	)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// Stats summarizes the local cache for the status surface.
type Stats struct {
	ChatMessages    int64
	QuizAttempts    int64
	PendingMessages int64
	PendingAttempts int64
	CacheSizeBytes  int64
	LastUpdated     time.Time
}

// GetStats returns aggregate statistics about the local cache.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.ChatMessage{}).Count(&stats.ChatMessages).Error; err != nil {
		return nil, fmt.Errorf("count chat messages: %w", err)
	}
	if err := db.Model(&models.QuizAttempt{}).Count(&stats.QuizAttempts).Error; err != nil {
		return nil, fmt.Errorf("count quiz attempts: %w", err)
	}
	if err := db.Model(&models.ChatMessage{}).Where("synced = ?", false).Count(&stats.PendingMessages).Error; err != nil {
		return nil, fmt.Errorf("count pending messages: %w", err)
	}
	if err := db.Model(&models.QuizAttempt{}).Where("synced = ?", false).Count(&stats.PendingAttempts).Error; err != nil {
		return nil, fmt.Errorf("count pending attempts: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.CacheSizeBytes = info.Size()
	}
	stats.LastUpdated = time.Now()

	return &stats, nil
}
