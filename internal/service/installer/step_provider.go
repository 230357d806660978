package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/annals/internal/config"
)

var providerTitles = map[string]string{
	config.ProviderDeepSeek:   "DeepSeek",
	config.ProviderOpenAI:     "OpenAI",
	config.ProviderOpenRouter: "OpenRouter",
	config.ProviderOllama:     "Ollama (local, no key)",
	config.ProviderCustom:     "Custom OpenAI-compatible endpoint",
}

// ProviderStep allows selection of the AI provider
type ProviderStep struct {
	choices []string
	cursor  int
}

func NewProviderStep() Step {
	return &ProviderStep{
		choices: config.Providers,
		cursor:  0,
	}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.Config.Provider = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your AI Provider:\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("> %s", providerTitles[choice])) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", providerTitles[choice])) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("(press ctrl+c to quit)") + "\n")
	return b.String()
}
