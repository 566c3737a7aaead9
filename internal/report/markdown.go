package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// MarkdownWriter outputs readings in Markdown format.
// This format is designed for sharing and journaling.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the reading in Markdown format.
func (w *MarkdownWriter) Write(reading *model.Reading) (int, error) {
	forecast, numerology, compat, err := decodePayload(reading)
	if err != nil {
		return 0, err
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, reading)

	switch {
	case forecast != nil:
		w.writeForecast(md, forecast)
	case numerology != nil:
		w.writeNumerology(md, numerology)
	case compat != nil:
		w.writeCompatibility(md, compat)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the reading header with envelope information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, reading *model.Reading) {
	md.H1(displayName(string(reading.Kind)) + " Reading")
	md.PlainText("")

	rows := [][]string{
		{"Profile", reading.ProfileName},
		{"Received", reading.CreatedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if reading.Kind == model.KindForecast {
		rows = append(rows, []string{"Scope", reading.Scope.String()})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeForecast writes the forecast body.
func (w *MarkdownWriter) writeForecast(md *markdown.Markdown, f *model.Forecast) {
	md.H2("Forecast")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Sun Sign", f.SunSign},
			{"Period", f.PeriodStart.Format("2006-01-02") + " to " + f.PeriodEnd.Format("2006-01-02")},
			{"Mood", orDash(f.Mood)},
		},
	})
	md.PlainText("")

	md.PlainText(f.Summary)
	md.PlainText("")

	for _, key := range sortedKeys(f.Sections) {
		md.H3(displayName(key))
		md.PlainText("")
		md.PlainText(f.Sections[key])
		md.PlainText("")
	}

	if len(f.LuckyNumbers) > 0 {
		numbers := make([]string, len(f.LuckyNumbers))
		for i, n := range f.LuckyNumbers {
			numbers[i] = strconv.Itoa(n)
		}
		md.H3("Lucky Numbers")
		md.PlainText("")
		md.PlainText(strings.Join(numbers, ", "))
		md.PlainText("")
	}
}

// writeNumerology writes the numerology body.
func (w *MarkdownWriter) writeNumerology(md *markdown.Markdown, n *model.NumerologyProfile) {
	md.H2("Core Numbers")
	md.PlainText("")

	cores := n.CoreNumbers()
	rows := make([][]string, len(cores))
	for i, core := range cores {
		rows[i] = []string{displayName(core.Key), strconv.Itoa(core.Value)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Number", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, core := range cores {
		text := n.Interpretations[core.Key]
		if text == "" {
			continue
		}
		md.Details(displayName(core.Key), text)
	}
	md.PlainText("")
}

// writeCompatibility writes the compatibility body.
func (w *MarkdownWriter) writeCompatibility(md *markdown.Markdown, c *model.CompatibilityResult) {
	md.H2("Compatibility: " + c.ProfileA + " + " + c.ProfileB)
	md.PlainText("")

	score := c.NormalizedScore()
	w.writeScoreAlert(md, score)

	if len(c.AspectScores) > 0 {
		rows := make([][]string, 0, len(c.AspectScores))
		for _, key := range sortedKeys(c.AspectScores) {
			rows = append(rows, []string{
				displayName(key),
				fmt.Sprintf("%.1f / 10", c.AspectScores[key]),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Aspect", "Score"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if c.Summary != "" {
		md.PlainText(c.Summary)
		md.PlainText("")
	}
}

// writeScoreAlert writes an alert colored by the overall score.
func (w *MarkdownWriter) writeScoreAlert(md *markdown.Markdown, score int) {
	switch {
	case score >= 80:
		md.Tip(fmt.Sprintf("Overall compatibility: **%d%%** - an exceptional match.", score))
	case score >= 60:
		md.Note(fmt.Sprintf("Overall compatibility: **%d%%** - a strong connection.", score))
	case score >= 40:
		md.Importantf("Overall compatibility: **%d%%** - a workable pairing with friction points.", score)
	default:
		md.Warningf("Overall compatibility: **%d%%** - significant differences to navigate.", score)
	}
	md.PlainText("")
}

// writeFooter writes the reading footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [Astromeric](https://github.com/btltech/astromeric-sub000)*")
}

// orDash substitutes a dash for an empty value in table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
