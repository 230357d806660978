package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/annals/internal/core"
)

const chatCompletionsPath = "/v1/chat/completions"

// OpenAICompatible talks to any server implementing the chat completions endpoint.
type OpenAICompatible struct {
	jsonTransport
	model       string
	temperature float64
	maxTokens   int
	jsonMode    bool
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	Path         string // defaults to /v1/chat/completions
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string

	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Timeout     time.Duration
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []core.Message  `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message core.Message `json:"message"`
	} `json:"choices"`
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	path := cfg.Path
	if path == "" {
		path = chatCompletionsPath
	}

	headers := make(map[string]string, len(cfg.ExtraHeaders)+1)
	for k, v := range cfg.ExtraHeaders {
		headers[k] = v
	}
	if cfg.AuthHeader != "" && cfg.APIKey != "" {
		headers[cfg.AuthHeader] = cfg.AuthPrefix + cfg.APIKey
	}

	return &OpenAICompatible{
		jsonTransport: newJSONTransport(strings.TrimRight(cfg.BaseURL, "/")+path, headers, cfg.Timeout),
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		jsonMode:      cfg.JSONMode,
	}
}

func (o *OpenAICompatible) Model() string {
	return o.model
}

// Complete performs a single request. Retrying is left to WithRetry.
func (o *OpenAICompatible) Complete(ctx context.Context, messages []core.Message) (string, error) {
	req := chatRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	if o.jsonMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	status, data, err := o.postJSON(ctx, req)
	if err != nil {
		return "", err
	}
	return parseChatResponse(status, data)
}

func parseChatResponse(status int, data []byte) (string, error) {
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("http %d: %s", status, snippet(data))
	}

	var result chatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in %s", core.ErrEmptyCompletion, snippet(data))
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: blank message content", core.ErrEmptyCompletion)
	}
	return content, nil
}

func snippet(data []byte) string {
	const limit = 300
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "..."
}
