package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Profile validation errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic handling while still providing human-readable messages.
var (
	// ErrEmptyProfileName is returned when a profile has no name.
	// The name is the key under which the profile is saved and referenced
	// by every other command.
	ErrEmptyProfileName = errors.New("profile name must not be empty")

	// ErrBirthDateInFuture is returned when the birth date is after the
	// current date. The backend rejects such profiles as well; validating
	// locally gives a clearer error before any network round trip.
	ErrBirthDateInFuture = errors.New("birth date must not be in the future")

	// ErrBirthDateZero is returned when no birth date was provided.
	ErrBirthDateZero = errors.New("birth date is required")
)

// BirthDateLayout is the accepted input format for birth dates.
const BirthDateLayout = "2006-01-02"

// BirthTimeLayout is the accepted input format for birth times.
const BirthTimeLayout = "15:04"

// SavedProfile is user-entered birth data sent to the backend to compute
// readings. It mirrors the ProfilePayload the backend expects.
type SavedProfile struct {
	// Name identifies the profile locally. It is unique among saved
	// profiles and used as the positional argument to forecast commands.
	Name string `json:"name" yaml:"name"`

	// BirthDate is the date of birth. Only the calendar day is meaningful;
	// the time component is carried separately in BirthTime because many
	// users do not know their exact birth time.
	BirthDate time.Time `json:"birth_date" yaml:"birth_date"`

	// BirthTime is the time of birth in "HH:MM" form, or empty when
	// unknown. Kept as a string because a zero time.Time is
	// indistinguishable from midnight.
	BirthTime string `json:"birth_time,omitempty" yaml:"birth_time,omitempty"`

	// Place is the birth place display name (e.g. "Lisbon, Portugal").
	Place string `json:"place,omitempty" yaml:"place,omitempty"`

	// Latitude and Longitude locate the birth place. Zero values mean the
	// place was never geocoded; the backend falls back to solar charts.
	Latitude  float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`

	// CreatedAt records when the profile was saved locally.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Validate checks that the profile carries enough data to request a reading.
// It returns the first problem found.
func (p *SavedProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProfileName
	}
	if p.BirthDate.IsZero() {
		return ErrBirthDateZero
	}
	if p.BirthDate.After(time.Now()) {
		return ErrBirthDateInFuture
	}
	if p.BirthTime != "" {
		if _, err := time.Parse(BirthTimeLayout, p.BirthTime); err != nil {
			return fmt.Errorf("invalid birth time %q: expected HH:MM", p.BirthTime)
		}
	}
	return nil
}

// HasLocation reports whether the profile carries geocoded coordinates.
func (p *SavedProfile) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}
