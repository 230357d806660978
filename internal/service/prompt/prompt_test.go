package prompt

import (
	"strings"
	"testing"

	"github.com/sandevgo/annals/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt_DescribesSchema(t *testing.T) {
	p := BuildSystemPrompt()

	for _, field := range core.EventFields {
		assert.Contains(t, p, field+":", "field %s must be described", field)
	}
	for _, level := range core.ImpactLevels {
		assert.Contains(t, p, `"`+level+`"`)
	}
	assert.Contains(t, p, "YYYY-MM-DD")
	assert.Contains(t, p, "empty array")
	assert.Contains(t, p, "Output only the JSON array")
}

func TestBuildUserPrompt(t *testing.T) {
	chunk := "1949年10月1日下午3点，开国大典举行。\n\n  indented line  "

	p := BuildUserPrompt(chunk, 2, 7)

	assert.Contains(t, p, "part 3/7")

	start := strings.Index(p, TextStart)
	end := strings.Index(p, TextEnd)
	require.True(t, start >= 0 && end > start)

	embedded := p[start+len(TextStart)+1 : end-1]
	assert.Equal(t, chunk, embedded, "chunk must be embedded verbatim")
}

func TestMessages(t *testing.T) {
	msgs := Messages(core.Chunk{Text: "text", Index: 0, Total: 1})

	require.Len(t, msgs, 2)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
	assert.Equal(t, BuildSystemPrompt(), msgs[0].Content)
	assert.Equal(t, core.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "part 1/1")
}
