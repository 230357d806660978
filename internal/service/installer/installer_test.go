package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/annals/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds messages to a step until it completes and reports whether it did.
func drive(step Step, state *InstallState, msgs ...tea.Msg) bool {
	for _, msg := range msgs {
		next, _ := step.Update(msg, state, 80, 24)
		if next == nil {
			return true
		}
		step = next
	}
	return false
}

func TestProviderStep(t *testing.T) {
	state := NewInstallState("")
	require.True(t, drive(NewProviderStep(), state, down, enter))
	assert.Equal(t, config.ProviderOpenAI, state.Config.Provider)
}

func TestAPIKeyStep(t *testing.T) {
	state := NewInstallState("")
	state.Config.Provider = config.ProviderDeepSeek

	step := NewAPIKeyStep()
	assert.False(t, drive(step, state, nextMsg{}, enter), "empty key must not be accepted")
	assert.True(t, drive(step, state, typed("sk-test"), enter))
	assert.Equal(t, "sk-test", state.Config.DeepSeekAPIKey)
}

func TestAPIKeyStep_SkippedForOllama(t *testing.T) {
	state := NewInstallState("")
	state.Config.Provider = config.ProviderOllama

	assert.True(t, drive(NewAPIKeyStep(), state, nextMsg{}))
}

func TestBaseURLStep(t *testing.T) {
	state := NewInstallState("")
	state.Config.Provider = config.ProviderDeepSeek
	assert.True(t, drive(NewBaseURLStep(), state, nextMsg{}))

	state.Config.Provider = config.ProviderCustom
	step := NewBaseURLStep()
	assert.False(t, drive(step, state, nextMsg{}, enter))
	assert.True(t, drive(step, state, typed("http://llm.local:8080"), enter))
	assert.Equal(t, "http://llm.local:8080", state.Config.CustomBaseURL)

	state.Config.Provider = config.ProviderOllama
	assert.True(t, drive(NewBaseURLStep(), state, nextMsg{}, enter))
	assert.Empty(t, state.Config.OllamaBaseURL)
}

func TestModelStep(t *testing.T) {
	state := NewInstallState("")
	state.Config.Provider = config.ProviderDeepSeek
	assert.True(t, drive(NewModelStep(), state, nextMsg{}, enter))
	assert.Empty(t, state.Config.Model)

	state.Config.Provider = config.ProviderCustom
	step := NewModelStep()
	assert.False(t, drive(step, state, nextMsg{}, enter), "custom provider has no default model")
	assert.True(t, drive(step, state, typed("qwen-max"), enter))
	assert.Equal(t, "qwen-max", state.Config.Model)
}

func TestInstallState_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime", ".env")
	state := NewInstallState(path)
	state.Config.Provider = config.ProviderDeepSeek
	state.Config.SetAPIKey("sk-test")

	require.NoError(t, state.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ANNALS_PROVIDER":  "deepseek",
		"DEEPSEEK_API_KEY": "sk-test",
	}, values)

	assert.ErrorIs(t, state.Save(), ErrEnvExists)
}
