package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/annals/internal/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChain serves local OpenAI-compatible servers (ollama, llama.cpp, vLLM)
// through the langchaingo client.
type LangChain struct {
	client      llms.Model
	model       string
	temperature float64
	maxTokens   int
	jsonMode    bool
}

type LangChainConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Timeout     time.Duration
}

func NewLangChain(cfg LangChainConfig) (*LangChain, error) {
	// Local servers ignore the token but the client refuses an empty one.
	token := cfg.APIKey
	if token == "" {
		token = "none"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create langchain client: %w", err)
	}

	return newLangChainWithModel(client, cfg), nil
}

func newLangChainWithModel(client llms.Model, cfg LangChainConfig) *LangChain {
	return &LangChain{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		jsonMode:    cfg.JSONMode,
	}
}

func (l *LangChain) Model() string {
	return l.model
}

func (l *LangChain) Complete(ctx context.Context, messages []core.Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(m.Role),
			Parts: []llms.ContentPart{llms.TextPart(m.Content)},
		})
	}

	opts := []llms.CallOption{llms.WithTemperature(l.temperature)}
	if l.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(l.maxTokens))
	}
	if l.jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := l.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", core.ErrEmptyCompletion)
	}

	text := response.Choices[0].Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: blank message content", core.ErrEmptyCompletion)
	}
	return text, nil
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
