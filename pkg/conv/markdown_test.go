package conv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<p><strong>bold</strong></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToHTML_DropsScripts(t *testing.T) {
	got := MarkdownToHTML([]byte("<script>alert('xss')</script>\n\nkept"))

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "kept")
}

func TestMarkdownToText(t *testing.T) {
	md := "# 第一章\n\n1949年10月1日，**开国大典**在北京举行。\n\n[来源](https://example.com)\n\n<script>alert('x')</script>"

	text, err := MarkdownToText([]byte(md))
	require.NoError(t, err)

	assert.Contains(t, text, "第一章")
	assert.Contains(t, text, "开国大典")
	assert.Contains(t, text, "来源")
	assert.Contains(t, text, "\n\n")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "*")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "https://example.com")
}

func TestHTMLToText(t *testing.T) {
	doc := "<html><body><p>First paragraph.</p><p>Second paragraph.</p></body></html>"

	text, err := HTMLToText(doc)
	require.NoError(t, err)

	first := strings.Index(text, "First paragraph.")
	second := strings.Index(text, "Second paragraph.")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text[first:second], "\n\n")
}

func TestTrimBOM(t *testing.T) {
	assert.Equal(t, []byte("abc"), TrimBOM([]byte("\xEF\xBB\xBFabc")))
	assert.Equal(t, []byte("abc"), TrimBOM([]byte("abc")))
}
