package core

import "context"

// Completer sends a chat conversation to a language model and returns the raw completion text.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type TokenCounter interface {
	CountTokens(text string) int
}
