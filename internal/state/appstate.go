package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// stateFileName is the file under the state directory holding app state.
const stateFileName = "state.json"

// State is the persisted subset of application state: a single shared,
// explicitly-typed struct with straightforward getter/setter methods.
// Fields not listed here are recomputed each run and never persisted.
type State struct {
	// Theme is the UI theme preference ("dark", "light", or empty for
	// the terminal default). Set via the theme command; the web app syncs
	// the same preference to the account.
	Theme string `json:"theme,omitempty"`

	// DefaultScope is the forecast scope used when no --scope flag is
	// given. Empty means the built-in default (daily).
	DefaultScope string `json:"default_scope,omitempty"`

	// ActiveProfile is the saved profile name used when a forecast
	// command is run without arguments.
	ActiveProfile string `json:"active_profile,omitempty"`
}

// Scope returns the persisted default scope, falling back to the given
// default when unset or unparseable. A corrupt value falls back silently:
// losing a preference is better than blocking every command.
func (s *State) Scope(fallback model.Scope) model.Scope {
	if s.DefaultScope == "" {
		return fallback
	}
	scope, err := model.ParseScope(s.DefaultScope)
	if err != nil {
		return fallback
	}
	return scope
}

// SetScope records a new default scope.
func (s *State) SetScope(scope model.Scope) {
	s.DefaultScope = scope.String()
}

// Store loads and saves State from the state directory.
type Store struct {
	// dir is the state directory.
	dir string
}

// NewStore creates a state store rooted at the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the persisted state. A missing file yields a zero State so
// first runs need no initialization step.
func (st *Store) Load() (*State, error) {
	path := filepath.Join(st.dir, stateFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is under our state dir
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &s, nil
}

// Save writes the state with owner-only permissions, creating the state
// directory if needed.
func (st *Store) Save(s *State) error {
	if err := os.MkdirAll(st.dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	path := filepath.Join(st.dir, stateFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
