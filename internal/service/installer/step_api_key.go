package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/annals/internal/config"
)

var keyPlaceholders = map[string]string{
	config.ProviderDeepSeek:   "sk-...",
	config.ProviderOpenAI:     "sk-...",
	config.ProviderOpenRouter: "sk-or-v1-...",
	config.ProviderCustom:     "token",
}

// APIKeyStep collects the credential of the selected provider. Ollama skips it.
type APIKeyStep struct {
	input    textinput.Model
	provider string
	envKey   string
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	if !state.Config.RequiresAPIKey() {
		return false
	}
	s.provider = state.Config.GetProvider()
	s.envKey = state.Config.APIKeyEnv()

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '*'
	s.input.Placeholder = keyPlaceholders[s.provider]
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val != "" {
			state.Config.SetAPIKey(val)
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		return "Loading...\n"
	}

	return fmt.Sprintf("Enter your API key (%s):\n\n%s\n\n%s\n",
		s.envKey, s.input.View(), hintStyle.Render("(press enter to confirm)"))
}
