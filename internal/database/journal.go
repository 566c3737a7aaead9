package database

import (
	"context"
	"fmt"
	"time"
)

// JournalEntry is a dated free-text entry with an optional mood.
type JournalEntry struct {
	// ID is the database row ID.
	ID int64

	// Body is the entry text.
	Body string

	// Mood is an optional one-word mood label.
	Mood string

	// CreatedAt records when the entry was written.
	CreatedAt time.Time
}

// AddJournalEntry stores a new journal entry.
func (rdb *ReadingDB) AddJournalEntry(ctx context.Context, body, mood string) (int64, error) {
	result, err := rdb.db.ExecContext(ctx,
		`INSERT INTO journal_entries (body, mood) VALUES (?, ?)`, body, mood,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add journal entry: %w", err)
	}
	return result.LastInsertId()
}

// ListJournalEntries returns entries newest first. Limit 0 means no limit.
func (rdb *ReadingDB) ListJournalEntries(ctx context.Context, limit int) ([]*JournalEntry, error) {
	query := `SELECT id, body, mood, created_at FROM journal_entries ORDER BY created_at DESC, id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*JournalEntry
	for rows.Next() {
		var e JournalEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Body, &e.Mood, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
