package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// anonCacheFileName is the file under the state directory holding the
// anonymous reading history.
const anonCacheFileName = "anon_readings.json"

// AnonCacheCap is the maximum number of anonymous readings kept.
// When the cap is reached, the oldest reading is dropped on insert.
const AnonCacheCap = 10

// ErrReadingNotFound is returned when no cached reading has the given ID.
var ErrReadingNotFound = errors.New("reading not found in anonymous cache")

// AnonCache is the capped client-side history of readings for users who
// have not created an account. Entries are kept newest first.
//
// Design decision: A JSON file rather than a sqlite table because the cache
// is tiny (at most 10 envelopes), rewritten whole on each insert, and must
// survive independently of the logged-in history database, mirroring the
// web app, which keeps it in a separate browser storage key.
type AnonCache struct {
	// dir is the state directory holding the cache file.
	dir string
}

// NewAnonCache creates a cache rooted at the given state directory.
func NewAnonCache(dir string) *AnonCache {
	return &AnonCache{dir: dir}
}

// path returns the cache file path.
func (c *AnonCache) path() string {
	return filepath.Join(c.dir, anonCacheFileName)
}

// load reads the cache file. A missing file yields an empty list.
func (c *AnonCache) load() ([]model.Reading, error) {
	data, err := os.ReadFile(c.path()) //nolint:gosec // path is under our state dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read anonymous cache: %w", err)
	}

	var readings []model.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("failed to parse anonymous cache: %w", err)
	}
	return readings, nil
}

// save writes the cache file with owner-only permissions.
func (c *AnonCache) save(readings []model.Reading) error {
	if err := os.MkdirAll(c.dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize anonymous cache: %w", err)
	}
	if err := os.WriteFile(c.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write anonymous cache: %w", err)
	}
	return nil
}

// Add prepends a reading and trims the cache to AnonCacheCap entries,
// dropping the oldest.
func (c *AnonCache) Add(reading *model.Reading) error {
	readings, err := c.load()
	if err != nil {
		return err
	}

	readings = append([]model.Reading{*reading}, readings...)
	if len(readings) > AnonCacheCap {
		readings = readings[:AnonCacheCap]
	}

	return c.save(readings)
}

// List returns the cached readings, newest first.
func (c *AnonCache) List() ([]model.Reading, error) {
	return c.load()
}

// Get returns the cached reading with the given ID.
func (c *AnonCache) Get(id string) (*model.Reading, error) {
	readings, err := c.load()
	if err != nil {
		return nil, err
	}
	for i := range readings {
		if readings[i].ID == id {
			return &readings[i], nil
		}
	}
	return nil, ErrReadingNotFound
}

// Clear empties the cache. Clearing an absent cache is not an error.
func (c *AnonCache) Clear() error {
	if err := os.Remove(c.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear anonymous cache: %w", err)
	}
	return nil
}
