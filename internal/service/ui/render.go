package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/internal/service/extractor"
)

// ChunkRow describes one chunk in the split preview.
type ChunkRow struct {
	Position string
	Start    int
	End      int
	Tokens   int // -1 when no estimate is available
	Head     string
}

func RenderChunks(rows []ChunkRow) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%d chunk(s)", len(rows))) + "\n")

	for _, r := range rows {
		tokens := "n/a"
		if r.Tokens >= 0 {
			tokens = fmt.Sprintf("~%d", r.Tokens)
		}
		line := fmt.Sprintf("%-8s %s %s %s",
			r.Position,
			UsageStyle.Render(fmt.Sprintf("[%d:%d]", r.Start, r.End)),
			FlagStyle.Render(fmt.Sprintf("%d runes, %s tokens", r.End-r.Start, tokens)),
			DescStyle.Render(oneLine(r.Head)),
		)
		b.WriteString(line + "\n")
	}
	return b.String()
}

func RenderStats(stats extractor.Stats, output string) string {
	if stats.Unique == 0 {
		return WarnStyle.Render("No events extracted.") + "\n"
	}

	summary := fmt.Sprintf("Extracted %d event(s) from %d chunk(s)", stats.Unique, stats.Chunks)
	details := fmt.Sprintf("%d candidate(s), %d failed chunk(s), %d with schema issues, %s",
		stats.Candidates, stats.Failed, stats.WithIssues, stats.Elapsed.Round(time.Millisecond))

	lines := []string{TitleStyle.Render(summary), DescStyle.Render(details)}
	if output != "" {
		lines = append(lines, "Saved to "+UsageStyle.Render(output))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// RenderRecords shows the first n records as indented JSON.
func RenderRecords(records []core.EventRecord, n int) (string, error) {
	if n > len(records) {
		n = len(records)
	}
	if n <= 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Preview (%d of %d)", n, len(records))) + "\n")
	for i := 0; i < n; i++ {
		body, err := indent(records[i])
		if err != nil {
			return "", fmt.Errorf("render record %d: %w", i+1, err)
		}
		b.WriteString(recordStyle.Render(body) + "\n")
	}
	return b.String(), nil
}

func indent(r core.EventRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
