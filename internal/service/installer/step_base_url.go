package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/annals/internal/config"
)

const defaultOllamaURL = "http://localhost:11434/v1"

// BaseURLStep asks for the endpoint of custom and ollama providers.
// An empty answer keeps the ollama default; the custom provider requires one.
type BaseURLStep struct {
	input    textinput.Model
	provider string
}

func NewBaseURLStep() Step {
	return &BaseURLStep{}
}

func (s *BaseURLStep) Init() tea.Cmd { return nil }

func (s *BaseURLStep) initProvider(state *InstallState) bool {
	s.provider = state.Config.GetProvider()

	ti := textinput.New()
	ti.Focus()
	ti.Width = 50
	switch s.provider {
	case config.ProviderCustom:
		ti.Placeholder = "https://api.example.com"
	case config.ProviderOllama:
		ti.Placeholder = defaultOllamaURL
	default:
		return false
	}
	s.input = ti
	return true
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
		switch s.provider {
		case config.ProviderCustom:
			if val == "" {
				return s, cmd
			}
			state.Config.CustomBaseURL = val
		case config.ProviderOllama:
			if val != "" && val != defaultOllamaURL {
				state.Config.OllamaBaseURL = val
			}
		}
		return nil, nil
	}

	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	if s.provider == "" {
		return "Loading...\n"
	}
	return "Enter the base URL of the endpoint:\n\n" + s.input.View() + "\n\n" +
		hintStyle.Render("(press enter to confirm)") + "\n"
}
