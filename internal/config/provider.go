package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
)

const (
	ProviderDeepSeek   = "deepseek"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

var Providers = []string{
	ProviderDeepSeek,
	ProviderOpenAI,
	ProviderOpenRouter,
	ProviderOllama,
	ProviderCustom,
}

var defaultModels = map[string]string{
	ProviderDeepSeek:   "deepseek-chat",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "deepseek/deepseek-chat",
	ProviderOllama:     "qwen2.5:7b",
}

type ProviderConfig struct {
	Provider string `env:"ANNALS_PROVIDER" envDefault:"deepseek"`
	Model    string `env:"ANNALS_MODEL"`

	DeepSeekAPIKey   string `env:"DEEPSEEK_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	CustomAPIKey     string `env:"CUSTOM_API_KEY"`
	CustomBaseURL    string `env:"CUSTOM_BASE_URL"`
	OllamaBaseURL    string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434/v1"`

	// Sampling
	Temperature float64 `env:"ANNALS_TEMPERATURE" envDefault:"0.3"`
	MaxTokens   int     `env:"ANNALS_MAX_TOKENS" envDefault:"4096"`
	JSONMode    bool    `env:"ANNALS_JSON_MODE" envDefault:"true"`

	// Transport
	MaxRetries     int           `env:"ANNALS_MAX_RETRIES" envDefault:"3"`
	RetryDelay     time.Duration `env:"ANNALS_RETRY_DELAY" envDefault:"2s"`
	RequestTimeout time.Duration `env:"ANNALS_REQUEST_TIMEOUT" envDefault:"60s"`
}

func ParseProviderConfig() (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	return c, nil
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := ParseProviderConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c ProviderConfig) GetProvider() string {
	return c.Provider
}

func (c ProviderConfig) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// DefaultModel returns the model used when ANNALS_MODEL is unset. The custom
// provider has none.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// APIKey resolves the credential of the selected provider.
func (c ProviderConfig) APIKey() string {
	switch c.Provider {
	case ProviderDeepSeek:
		return c.DeepSeekAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	case ProviderCustom:
		return c.CustomAPIKey
	default:
		return ""
	}
}

// SetAPIKey stores key in the field of the selected provider.
func (c *ProviderConfig) SetAPIKey(key string) {
	switch c.Provider {
	case ProviderDeepSeek:
		c.DeepSeekAPIKey = key
	case ProviderOpenAI:
		c.OpenAIAPIKey = key
	case ProviderOpenRouter:
		c.OpenRouterAPIKey = key
	case ProviderCustom:
		c.CustomAPIKey = key
	}
}

// APIKeyEnv names the variable the selected provider reads its credential from.
func (c ProviderConfig) APIKeyEnv() string {
	switch c.Provider {
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderCustom:
		return "CUSTOM_API_KEY"
	default:
		return ""
	}
}

func (c ProviderConfig) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}

func (c ProviderConfig) Validate() error {
	known := false
	for _, p := range Providers {
		if p == c.Provider {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", core.ErrUnknownProvider, c.Provider)
	}

	if c.RequiresAPIKey() && c.APIKey() == "" {
		return fmt.Errorf("%w: set %s", core.ErrMissingAPIKey, c.APIKeyEnv())
	}
	if c.Provider == ProviderCustom && c.CustomBaseURL == "" {
		return fmt.Errorf("CUSTOM_BASE_URL is required for the custom provider")
	}
	if c.GetModel() == "" {
		return fmt.Errorf("ANNALS_MODEL is required for the %s provider", c.Provider)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("retry delay and request timeout must be positive")
	}
	return nil
}
