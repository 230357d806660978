package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding approximates the tokenizers of the chat models annals targets.
const DefaultEncoding = "cl100k_base"

var (
	shared     *Counter
	sharedErr  error
	sharedOnce sync.Once
)

// Counter estimates prompt sizes with a tiktoken encoding.
type Counter struct {
	enc *tiktoken.Tiktoken
}

func New(encoding string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %s: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// Default returns a process-wide counter for DefaultEncoding. The encoding is
// loaded once; a load failure is returned on every call.
func Default() (*Counter, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New(DefaultEncoding)
	})
	return shared, sharedErr
}

func (c *Counter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Head returns the leading maxTokens tokens of text, decoded back to a string.
func (c *Counter) Head(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return ""
	}
	tokens := c.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return c.enc.Decode(tokens[:maxTokens])
}
