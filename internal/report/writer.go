package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// Writer defines the interface for reading output.
// Implementations render readings in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write renders the reading to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(reading *model.Reading) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write readings, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the reading to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(reading *model.Reading) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(reading)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for reading writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser converts snake_case payload keys to display form.
var titleCaser = cases.Title(language.English)

// displayName converts a payload key like "life_path" or "soul_urge"
// into its display form ("Life Path", "Soul Urge").
func displayName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// decodePayload splits a reading into its typed payload.
// Exactly one of the returned pointers is non-nil on success.
func decodePayload(reading *model.Reading) (*model.Forecast, *model.NumerologyProfile, *model.CompatibilityResult, error) {
	switch reading.Kind {
	case model.KindForecast:
		f, err := reading.Forecast()
		return f, nil, nil, err
	case model.KindNumerology:
		n, err := reading.Numerology()
		return nil, n, nil, err
	case model.KindCompatibility:
		c, err := reading.Compatibility()
		return nil, nil, c, err
	default:
		return nil, nil, nil, fmt.Errorf("unknown reading kind: %q", reading.Kind)
	}
}
