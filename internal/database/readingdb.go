package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/btltech/astromeric-sub000/internal/model"
)

// dbFileName is the sqlite database file name under the data directory.
const dbFileName = "astromeric.db"

// ReadingDB provides SQLite-based storage for profiles, readings, habits,
// and journal entries. It manages connection pooling and provides methods
// for CRUD operations.
//
// Design decision: One database file for everything rather than a file per
// concern. The tables are small, and a single file simplifies backup and
// the `history clear` semantics.
type ReadingDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ReadingDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ReadingDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned.
func Open(dataDir string, opts Options) (*ReadingDB, error) {
	dbPath := filepath.Join(dataDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent command use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ReadingDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *ReadingDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ReadingDB) createTables() error {
	schema := `
	-- Saved birth profiles, keyed by name
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		birth_date TEXT NOT NULL,
		birth_time TEXT,
		place TEXT,
		latitude REAL DEFAULT 0,
		longitude REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Reading history for logged-in users; payload is the backend JSON
	CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		profile_name TEXT NOT NULL,
		scope TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_readings_profile ON readings(profile_name);
	CREATE INDEX IF NOT EXISTS idx_readings_created ON readings(created_at);

	-- Habit tracker
	CREATE TABLE IF NOT EXISTS habits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One row per habit per calendar day
	CREATE TABLE IF NOT EXISTS habit_completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		habit_id INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		UNIQUE(habit_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_completions_habit ON habit_completions(habit_id);

	-- Journal entries
	CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		body TEXT NOT NULL,
		mood TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_journal_created ON journal_entries(created_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReading stores a reading envelope in the history.
func (rdb *ReadingDB) SaveReading(ctx context.Context, reading *model.Reading) error {
	query := `
	INSERT INTO readings (id, kind, profile_name, scope, created_at, payload)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := rdb.db.ExecContext(ctx, query,
		reading.ID,
		string(reading.Kind),
		reading.ProfileName,
		reading.Scope.String(),
		reading.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		string(reading.Payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// GetReading retrieves a reading by ID. Returns nil if not found.
func (rdb *ReadingDB) GetReading(ctx context.Context, id string) (*model.Reading, error) {
	query := `
	SELECT id, kind, profile_name, scope, created_at, payload
	FROM readings
	WHERE id = ?
	`

	reading, err := scanReading(rdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}
	return reading, nil
}

// ListReadings returns stored readings newest first. A non-empty
// profileName filters by profile; limit 0 means no limit.
func (rdb *ReadingDB) ListReadings(ctx context.Context, profileName string, limit int) ([]*model.Reading, error) {
	query := `
	SELECT id, kind, profile_name, scope, created_at, payload
	FROM readings
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if profileName != "" {
		query += " AND profile_name = ?"
		args = append(args, profileName)
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	var readings []*model.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

// ClearReadings deletes the whole reading history and reports how many
// rows were removed.
func (rdb *ReadingDB) ClearReadings(ctx context.Context) (int64, error) {
	result, err := rdb.db.ExecContext(ctx, `DELETE FROM readings`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear readings: %w", err)
	}
	return result.RowsAffected()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanReading.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReading reads one reading row into its envelope.
func scanReading(row rowScanner) (*model.Reading, error) {
	var reading model.Reading
	var kind, scope, createdAt, payload string

	if err := row.Scan(&reading.ID, &kind, &reading.ProfileName, &scope, &createdAt, &payload); err != nil {
		return nil, err
	}

	reading.Kind = model.ReadingKind(kind)
	if parsed, err := model.ParseScope(scope); err == nil {
		reading.Scope = parsed
	}
	reading.CreatedAt = parseTimestamp(createdAt)
	reading.Payload = json.RawMessage(payload)

	return &reading, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
