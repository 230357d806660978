package llm

import "github.com/sandevgo/annals/internal/core"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(cfg OpenAICompatibleConfig) *OpenRouter {
	cfg.BaseURL = "https://openrouter.ai/api"
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	cfg.ExtraHeaders = map[string]string{
		"HTTP-Referer": core.AnnalsRepositoryURL,
		"X-Title":      core.AnnalsName,
	}
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
