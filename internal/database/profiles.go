package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// ErrProfileNotFound is returned when no saved profile has the given name.
var ErrProfileNotFound = errors.New("profile not found: save it with 'astromeric profile add'")

// ErrProfileExists is returned when adding a profile whose name is taken.
var ErrProfileExists = errors.New("a profile with this name already exists")

// SaveProfile stores a new birth profile.
func (rdb *ReadingDB) SaveProfile(ctx context.Context, p *model.SavedProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO profiles (name, birth_date, birth_time, place, latitude, longitude)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := rdb.db.ExecContext(ctx, query,
		p.Name,
		p.BirthDate.Format(model.BirthDateLayout),
		p.BirthTime,
		p.Place,
		p.Latitude,
		p.Longitude,
	)
	if err != nil {
		// sqlite reports UNIQUE violations as generic errors; the name is
		// the only unique column here, so map all constraint failures.
		if isUniqueViolation(err) {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a saved profile by name.
func (rdb *ReadingDB) GetProfile(ctx context.Context, name string) (*model.SavedProfile, error) {
	query := `
	SELECT name, birth_date, birth_time, place, latitude, longitude, created_at
	FROM profiles
	WHERE name = ?
	`

	var p model.SavedProfile
	var birthDate, createdAt string
	var birthTime, place sql.NullString

	err := rdb.db.QueryRowContext(ctx, query, name).Scan(
		&p.Name,
		&birthDate,
		&birthTime,
		&place,
		&p.Latitude,
		&p.Longitude,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.BirthDate = parseTimestamp(birthDate + " 00:00:00")
	p.BirthTime = birthTime.String
	p.Place = place.String
	p.CreatedAt = parseTimestamp(createdAt)

	return &p, nil
}

// ListProfiles returns all saved profiles ordered by name.
func (rdb *ReadingDB) ListProfiles(ctx context.Context) ([]*model.SavedProfile, error) {
	query := `
	SELECT name, birth_date, birth_time, place, latitude, longitude, created_at
	FROM profiles
	ORDER BY name
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.SavedProfile
	for rows.Next() {
		var p model.SavedProfile
		var birthDate, createdAt string
		var birthTime, place sql.NullString

		if err := rows.Scan(&p.Name, &birthDate, &birthTime, &place, &p.Latitude, &p.Longitude, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		p.BirthDate = parseTimestamp(birthDate + " 00:00:00")
		p.BirthTime = birthTime.String
		p.Place = place.String
		p.CreatedAt = parseTimestamp(createdAt)
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

// RemoveProfile deletes a saved profile by name.
func (rdb *ReadingDB) RemoveProfile(ctx context.Context, name string) error {
	result, err := rdb.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// isUniqueViolation reports whether the error is a sqlite UNIQUE
// constraint failure. modernc.org/sqlite has no typed error for this,
// so we match the message, which is stable across versions.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
