package model

import "fmt"

// Scope represents the time horizon of a requested forecast.
//
// Design decision: We use iota-based constants rather than raw strings
// because scopes are compared and switched on throughout the CLI, and the
// typed enum catches typos at compile time. String() and ParseScope()
// handle the wire representation, which is lowercase.
type Scope int

const (
	// ScopeNone marks readings that carry no time horizon, such as
	// numerology and compatibility readings. It is the zero value, so a
	// reading constructed without a scope stores and serializes as empty
	// rather than as a spurious "daily".
	ScopeNone Scope = iota

	// ScopeDaily requests a forecast for a single day.
	ScopeDaily

	// ScopeWeekly requests a forecast covering seven days.
	ScopeWeekly

	// ScopeMonthly requests a forecast covering a calendar month.
	ScopeMonthly
)

// String returns the lowercase wire representation of the scope.
// ScopeNone renders as the empty string.
func (s Scope) String() string {
	switch s {
	case ScopeNone:
		return ""
	case ScopeDaily:
		return "daily"
	case ScopeWeekly:
		return "weekly"
	case ScopeMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// Valid reports whether the scope names a fetchable forecast horizon.
// ScopeNone is not a valid request scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeDaily, ScopeWeekly, ScopeMonthly:
		return true
	default:
		return false
	}
}

// ParseScope converts a string into a Scope.
// The comparison is exact; callers should lowercase user input first.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "daily":
		return ScopeDaily, nil
	case "weekly":
		return ScopeWeekly, nil
	case "monthly":
		return ScopeMonthly, nil
	default:
		return ScopeNone, fmt.Errorf("invalid scope %q: must be daily, weekly, or monthly", s)
	}
}

// MarshalText implements encoding.TextMarshaler so scopes serialize as
// their wire strings in JSON and YAML. ScopeNone marshals as empty.
func (s Scope) MarshalText() ([]byte, error) {
	if s == ScopeNone {
		return []byte{}, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid scope value %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields
// ScopeNone, matching readings stored without a scope.
func (s *Scope) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ScopeNone
		return nil
	}
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
