package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file created inside the data directory.
const FileName = "scamguard.db"

// GuardDB provides SQLite-based storage for lists, scan records, reports and
// the activity log. It is safe for concurrent use.
type GuardDB struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Options configures GuardDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a GuardDB inside dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*GuardDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	gdb := &GuardDB{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := gdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return gdb, nil
}

// Path returns the database file path.
func (g *GuardDB) Path() string {
	return g.dbPath
}

// Close closes the database connection.
func (g *GuardDB) Close() error {
	return g.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (g *GuardDB) createTables() error {
	schema := `
	-- Whitelist and blacklist entries in insertion order
	CREATE TABLE IF NOT EXISTS list_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		list TEXT NOT NULL,
		pattern TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(list, pattern)
	);

	CREATE INDEX IF NOT EXISTS idx_list_entries_order ON list_entries(list, position);

	-- Scan records are cached results shown in history until they expire
	CREATE TABLE IF NOT EXISTS scan_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		domain TEXT NOT NULL,
		score INTEGER NOT NULL,
		status TEXT NOT NULL,
		issues TEXT NOT NULL,
		content_hash TEXT,
		source TEXT,
		scanned_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scan_records_url ON scan_records(url);
	CREATE INDEX IF NOT EXISTS idx_scan_records_domain ON scan_records(domain);
	CREATE INDEX IF NOT EXISTS idx_scan_records_scanned_at ON scan_records(scanned_at);

	-- User-submitted scam reports
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reported_url TEXT NOT NULL,
		domain TEXT NOT NULL,
		reason TEXT NOT NULL,
		reporter_email TEXT,
		blacklisted INTEGER NOT NULL DEFAULT 0,
		reported_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_domain ON reports(domain);

	-- Activity log
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		subject TEXT NOT NULL,
		detail TEXT,
		at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at);
	`

	_, err := g.db.ExecContext(context.Background(), schema)
	return err
}

// storedTimeLayout is a fixed-width UTC layout so that stored timestamps
// sort lexicographically in time order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

// formatTimestamp converts t to its stored form.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// timestampFormats contains the timestamp formats that may be read back.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeLayout,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
