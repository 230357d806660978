package llm

// CustomOpenAI targets a self-hosted or third-party endpoint given by CUSTOM_BASE_URL.
type CustomOpenAI struct {
	*OpenAICompatible
}

func NewCustomOpenAI(cfg OpenAICompatibleConfig) *CustomOpenAI {
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
