package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrHabitNotFound is returned when no habit has the given name.
var ErrHabitNotFound = errors.New("habit not found: create it with 'astromeric habit add'")

// ErrHabitExists is returned when adding a habit whose name is taken.
var ErrHabitExists = errors.New("a habit with this name already exists")

// dayLayout is the calendar-day format stored in habit_completions.
const dayLayout = "2006-01-02"

// Habit is a tracked habit with its database identity.
type Habit struct {
	// ID is the database row ID.
	ID int64

	// Name identifies the habit.
	Name string

	// CreatedAt records when the habit was created.
	CreatedAt time.Time
}

// AddHabit creates a new habit.
func (rdb *ReadingDB) AddHabit(ctx context.Context, name string) (*Habit, error) {
	result, err := rdb.db.ExecContext(ctx, `INSERT INTO habits (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrHabitExists
		}
		return nil, fmt.Errorf("failed to add habit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read habit id: %w", err)
	}
	return &Habit{ID: id, Name: name, CreatedAt: time.Now()}, nil
}

// GetHabit retrieves a habit by name.
func (rdb *ReadingDB) GetHabit(ctx context.Context, name string) (*Habit, error) {
	var h Habit
	var createdAt string

	err := rdb.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM habits WHERE name = ?`, name,
	).Scan(&h.ID, &h.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	h.CreatedAt = parseTimestamp(createdAt)
	return &h, nil
}

// ListHabits returns all habits ordered by name.
func (rdb *ReadingDB) ListHabits(ctx context.Context) ([]*Habit, error) {
	rows, err := rdb.db.QueryContext(ctx, `SELECT id, name, created_at FROM habits ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []*Habit
	for rows.Next() {
		var h Habit
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		h.CreatedAt = parseTimestamp(createdAt)
		habits = append(habits, &h)
	}

	return habits, rows.Err()
}

// RemoveHabit deletes a habit and its completions.
func (rdb *ReadingDB) RemoveHabit(ctx context.Context, name string) error {
	result, err := rdb.db.ExecContext(ctx, `DELETE FROM habits WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove habit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal: %w", err)
	}
	if affected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// MarkDone records a completion for the habit on the given calendar day.
// Marking the same day twice is a no-op thanks to the UNIQUE constraint.
func (rdb *ReadingDB) MarkDone(ctx context.Context, habitID int64, day time.Time) error {
	query := `
	INSERT INTO habit_completions (habit_id, day)
	VALUES (?, ?)
	ON CONFLICT(habit_id, day) DO NOTHING
	`

	_, err := rdb.db.ExecContext(ctx, query, habitID, day.Format(dayLayout))
	if err != nil {
		return fmt.Errorf("failed to mark habit done: %w", err)
	}
	return nil
}

// Completions returns the habit's completion days sorted newest first.
func (rdb *ReadingDB) Completions(ctx context.Context, habitID int64) ([]time.Time, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT day FROM habit_completions WHERE habit_id = ? ORDER BY day DESC`, habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		t, err := time.Parse(dayLayout, day)
		if err != nil {
			continue // Skip malformed rows
		}
		days = append(days, t)
	}

	return days, rows.Err()
}
