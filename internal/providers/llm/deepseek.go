package llm

const DeepSeekBaseURL = "https://api.deepseek.com"

type DeepSeek struct {
	*OpenAICompatible
}

func NewDeepSeek(cfg OpenAICompatibleConfig) *DeepSeek {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepSeekBaseURL
	}
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return &DeepSeek{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
