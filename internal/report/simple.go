package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// SimpleWriter outputs human-readable text readings.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the reading in human-readable format.
func (w *SimpleWriter) Write(reading *model.Reading) (int, error) {
	forecast, numerology, compat, err := decodePayload(reading)
	if err != nil {
		return 0, err
	}

	var sb strings.Builder

	w.writeHeader(&sb, reading)

	switch {
	case forecast != nil:
		w.writeForecast(&sb, forecast)
	case numerology != nil:
		w.writeNumerology(&sb, numerology)
	case compat != nil:
		w.writeCompatibility(&sb, compat)
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the reading header with envelope information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, reading *model.Reading) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("                         %s READING\n", strings.ToUpper(string(reading.Kind))))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Profile:   %s\n", reading.ProfileName))
	if reading.Kind == model.KindForecast {
		sb.WriteString(fmt.Sprintf("Scope:     %s\n", reading.Scope))
	}
	sb.WriteString(fmt.Sprintf("Received:  %s\n", reading.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("ID:        %s\n", reading.ID))
	}
	sb.WriteString("\n")
}

// writeForecast writes the forecast body.
func (w *SimpleWriter) writeForecast(sb *strings.Builder, f *model.Forecast) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FORECAST\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Sun Sign: %s\n", f.SunSign))
	sb.WriteString(fmt.Sprintf("  Period:   %s - %s\n",
		f.PeriodStart.Format("2006-01-02"), f.PeriodEnd.Format("2006-01-02")))
	if f.Mood != "" {
		sb.WriteString(fmt.Sprintf("  Mood:     %s\n", f.Mood))
	}
	sb.WriteString("\n")
	sb.WriteString(wrapIndent(f.Summary, "  "))
	sb.WriteString("\n")

	for _, key := range sortedKeys(f.Sections) {
		sb.WriteString(fmt.Sprintf("\n[%s]\n", strings.ToUpper(displayName(key))))
		sb.WriteString(wrapIndent(f.Sections[key], "  "))
		sb.WriteString("\n")
	}

	if len(f.LuckyNumbers) > 0 {
		sb.WriteString("\nLucky numbers: ")
		for i, n := range f.LuckyNumbers {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%d", n))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeNumerology writes the numerology body.
func (w *SimpleWriter) writeNumerology(sb *strings.Builder, n *model.NumerologyProfile) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CORE NUMBERS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, core := range n.CoreNumbers() {
		sb.WriteString(fmt.Sprintf("  %-14s %d\n", displayName(core.Key)+":", core.Value))
	}
	sb.WriteString("\n")

	for _, core := range n.CoreNumbers() {
		text, ok := n.Interpretations[core.Key]
		if !ok || text == "" {
			if !w.showEmpty {
				continue
			}
			text = "No interpretation available"
		}
		sb.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(displayName(core.Key))))
		sb.WriteString(wrapIndent(text, "  "))
		sb.WriteString("\n\n")
	}
}

// writeCompatibility writes the compatibility body.
func (w *SimpleWriter) writeCompatibility(sb *strings.Builder, c *model.CompatibilityResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("COMPATIBILITY: %s + %s\n", c.ProfileA, c.ProfileB))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Overall: %d%%\n\n", c.NormalizedScore()))

	for _, key := range sortedKeys(c.AspectScores) {
		sb.WriteString(fmt.Sprintf("  %-14s %.1f / 10\n", displayName(key)+":", c.AspectScores[key]))
	}
	if len(c.AspectScores) > 0 {
		sb.WriteString("\n")
	}

	if c.Summary != "" {
		sb.WriteString(wrapIndent(c.Summary, "  "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the reading footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Generated by Astromeric\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// sortedKeys returns map keys in alphabetical order so the output is
// stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// wrapIndent indents every line of the text with the given prefix.
func wrapIndent(text, prefix string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
