package core

import "errors"

var (
	ErrMissingAPIKey    = errors.New("api key is not set")
	ErrUnknownProvider  = errors.New("unknown llm provider")
	ErrEmptyCompletion  = errors.New("empty completion")
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	ErrInvalidOverlap   = errors.New("chunk overlap must be non-negative and smaller than chunk size")
)
