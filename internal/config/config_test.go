package config

import (
	"testing"
	"time"

	"github.com/sandevgo/annals/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractConfig_Defaults(t *testing.T) {
	cfg, err := ParseExtractConfig()
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, time.Second, cfg.ChunkDelay)
	assert.Equal(t, 1, cfg.GetWorkers())
	assert.Equal(t, "events_output.json", cfg.OutputPath)
	assert.Equal(t, 2, cfg.PreviewCount)
	assert.NoError(t, cfg.Validate())
}

func TestParseExtractConfig_FromEnv(t *testing.T) {
	t.Setenv("ANNALS_CHUNK_SIZE", "500")
	t.Setenv("ANNALS_CHUNK_OVERLAP", "50")
	t.Setenv("ANNALS_CHUNK_DELAY", "250ms")
	t.Setenv("ANNALS_WORKERS", "4")

	cfg, err := ParseExtractConfig()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.GetChunkSize())
	assert.Equal(t, 50, cfg.GetChunkOverlap())
	assert.Equal(t, 250*time.Millisecond, cfg.GetChunkDelay())
	assert.Equal(t, 4, cfg.GetWorkers())
}

func TestExtractConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ExtractConfig
		wantErr error
	}{
		{"zero size", ExtractConfig{ChunkSize: 0}, core.ErrInvalidChunkSize},
		{"negative overlap", ExtractConfig{ChunkSize: 10, ChunkOverlap: -1}, core.ErrInvalidOverlap},
		{"overlap equals size", ExtractConfig{ChunkSize: 10, ChunkOverlap: 10}, core.ErrInvalidOverlap},
		{"valid", ExtractConfig{ChunkSize: 10, ChunkOverlap: 9}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseProviderConfig_Defaults(t *testing.T) {
	cfg, err := ParseProviderConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderDeepSeek, cfg.GetProvider())
	assert.Equal(t, "deepseek-chat", cfg.GetModel())
	assert.InDelta(t, 0.3, cfg.Temperature, 1e-9)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.True(t, cfg.JSONMode)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestProviderConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	cfg, err := ParseProviderConfig()
	require.NoError(t, err)

	err = cfg.Validate()
	assert.ErrorIs(t, err, core.ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY")
}

func TestProviderConfig_Validate(t *testing.T) {
	base := func() ProviderConfig {
		return ProviderConfig{
			Provider:       ProviderDeepSeek,
			DeepSeekAPIKey: "sk-test",
			MaxRetries:     3,
			RetryDelay:     time.Second,
			RequestTimeout: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *ProviderConfig)
		wantErr bool
		is      error
	}{
		{name: "valid deepseek", mutate: func(c *ProviderConfig) {}},
		{
			name:    "unknown provider",
			mutate:  func(c *ProviderConfig) { c.Provider = "acme" },
			wantErr: true,
			is:      core.ErrUnknownProvider,
		},
		{
			name: "openai uses its own key",
			mutate: func(c *ProviderConfig) {
				c.Provider = ProviderOpenAI
			},
			wantErr: true,
			is:      core.ErrMissingAPIKey,
		},
		{
			name: "ollama needs no key",
			mutate: func(c *ProviderConfig) {
				c.Provider = ProviderOllama
				c.DeepSeekAPIKey = ""
			},
		},
		{
			name: "custom requires base url",
			mutate: func(c *ProviderConfig) {
				c.Provider = ProviderCustom
				c.CustomAPIKey = "k"
				c.Model = "m"
			},
			wantErr: true,
		},
		{
			name: "custom requires model",
			mutate: func(c *ProviderConfig) {
				c.Provider = ProviderCustom
				c.CustomAPIKey = "k"
				c.CustomBaseURL = "http://localhost:8080"
			},
			wantErr: true,
		},
		{
			name:    "zero retries",
			mutate:  func(c *ProviderConfig) { c.MaxRetries = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestGetRuntimePath(t *testing.T) {
	t.Setenv("ANNALS_RUNTIME_PATH", "/tmp/annals-runtime")
	assert.Equal(t, "/tmp/annals-runtime", GetRuntimePath())
	assert.Equal(t, "/tmp/annals-runtime/.env", GetEnvFilePath())
}

func TestProviderConfig_SetAPIKey(t *testing.T) {
	for _, provider := range []string{ProviderDeepSeek, ProviderOpenAI, ProviderOpenRouter, ProviderCustom} {
		cfg := ProviderConfig{Provider: provider}
		cfg.SetAPIKey("sk-" + provider)
		assert.Equal(t, "sk-"+provider, cfg.APIKey(), provider)
	}

	ollama := ProviderConfig{Provider: ProviderOllama}
	ollama.SetAPIKey("ignored")
	assert.Empty(t, ollama.APIKey())
	assert.False(t, ollama.RequiresAPIKey())
}
