package conv

import (
	"bytes"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions   = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags    = html.CommonFlags
	sourcePolicy = bluemonday.UGCPolicy()
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
)

// MarkdownToHTML renders markdown and drops anything outside the UGC policy
// (scripts, styles, event handlers).
func MarkdownToHTML(md []byte) string {
	// 1. Render HTML
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	// 2. Sanitize tags
	return string(sourcePolicy.SanitizeBytes(unsafeHTML))
}

// HTMLToText flattens an HTML document into plain text without markup
// decorations. Paragraph breaks survive as blank lines so the segmenter can
// still cut on them.
func HTMLToText(doc string) (string, error) {
	text, err := html2text.FromString(doc, html2text.Options{
		OmitLinks: true,
		TextOnly:  true,
	})
	if err != nil {
		return "", fmt.Errorf("html to text: %w", err)
	}
	return text, nil
}

func MarkdownToText(md []byte) (string, error) {
	return HTMLToText(MarkdownToHTML(md))
}

func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
