package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/sandevgo/annals/pkg/retry"
)

// NewProvider creates the configured client wrapped in WithRetry.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig, opts ...RetryOption) (core.Completer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	retrier := retry.NewRetrier(&retry.Config{
		MaxAttempts: cfg.MaxRetries,
		Delay:       cfg.RetryDelay,
	})
	return WithRetry(client, retrier, opts...), nil
}

func newClient(cfg *config.ProviderConfig) (core.Completer, error) {
	compat := OpenAICompatibleConfig{
		APIKey:      cfg.APIKey(),
		Model:       cfg.GetModel(),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		JSONMode:    cfg.JSONMode,
		Timeout:     cfg.RequestTimeout,
	}

	switch cfg.GetProvider() {
	case config.ProviderDeepSeek:
		return NewDeepSeek(compat), nil
	case config.ProviderOpenAI:
		return NewOpenAI(compat), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(compat), nil
	case config.ProviderCustom:
		compat.BaseURL = cfg.CustomBaseURL
		return NewCustomOpenAI(compat), nil
	case config.ProviderOllama:
		return NewLangChain(LangChainConfig{
			BaseURL:     cfg.OllamaBaseURL,
			Model:       cfg.GetModel(),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			JSONMode:    cfg.JSONMode,
			Timeout:     cfg.RequestTimeout,
		})
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownProvider, cfg.Provider)
	}
}
