package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/annals/pkg/conv"
	"github.com/sandevgo/annals/pkg/log"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// Source reads narrative text from disk. Markdown and HTML are flattened to plain
// text, every other file is used verbatim.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Load(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}

	data = conv.TrimBOM(data)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	format := DetectFormat(path)

	var text string
	switch format {
	case FormatMarkdown:
		text, err = conv.MarkdownToText(data)
	case FormatHTML:
		text, err = conv.HTMLToText(string(data))
	default:
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to convert %s source: %w", format, err)
	}

	log.FromCtx(ctx).Info().
		Str("path", path).
		Str("format", format).
		Int("chars", utf8.RuneCountInString(text)).
		Msg("source loaded")

	return text, nil
}

func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}
