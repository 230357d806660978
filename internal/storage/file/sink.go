package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
)

// Sink writes extraction results as a single JSON array.
type Sink struct{}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Save(ctx context.Context, path string, records []core.EventRecord) error {
	if records == nil {
		records = []core.EventRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("results saved")

	return nil
}
