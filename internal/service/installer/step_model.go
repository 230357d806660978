package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/annals/internal/config"
)

// ModelStep asks for the model name. Leaving it empty keeps the provider default.
type ModelStep struct {
	input    textinput.Model
	ready    bool
	fallback string
}

func NewModelStep() Step {
	return &ModelStep{}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		s.ready = true
		s.fallback = config.DefaultModel(state.Config.GetProvider())

		s.input = textinput.New()
		s.input.Focus()
		s.input.Width = 40
		s.input.Placeholder = s.fallback
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && s.fallback == "" {
			return s, cmd
		}
		if val != s.fallback {
			state.Config.Model = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	hint := "(press enter to confirm)"
	if s.fallback != "" {
		hint = fmt.Sprintf("(press enter to keep %s)", s.fallback)
	}
	return "Enter the model name:\n\n" + s.input.View() + "\n\n" + hintStyle.Render(hint) + "\n"
}
