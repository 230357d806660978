package llm

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(cfg OpenAICompatibleConfig) *OpenAI {
	cfg.BaseURL = "https://api.openai.com"
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
