package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCounter(t *testing.T) *Counter {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	return c
}

func TestCountTokens(t *testing.T) {
	c := defaultCounter(t)

	assert.Equal(t, 0, c.CountTokens(""))
	assert.Greater(t, c.CountTokens("Hello world."), 0)

	short := c.CountTokens("第一句话。")
	long := c.CountTokens(strings.Repeat("第一句话。", 10))
	assert.Greater(t, long, short)
}

func TestHead(t *testing.T) {
	c := defaultCounter(t)
	text := "Sentence one. Sentence two. Sentence three."

	assert.Equal(t, "", c.Head(text, 0))
	assert.Equal(t, text, c.Head(text, 1000))

	head := c.Head(text, 3)
	require.NotEmpty(t, head)
	assert.True(t, strings.HasPrefix(text, head))
	assert.LessOrEqual(t, c.CountTokens(head), 3)
}

func TestDefault_IsShared(t *testing.T) {
	a := defaultCounter(t)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}
