package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	id    string
	label string
}

// choiceStep is a vertical menu navigated with the arrow keys.
type choiceStep struct {
	title   string
	choices []choice
	cursor  int
	apply   func(*Settings, string)
}

func newChoiceStep(title string, choices []choice, apply func(*Settings, string)) *choiceStep {
	return &choiceStep{title: title, choices: choices, apply: apply}
}

func (s *choiceStep) Init() tea.Cmd {
	return nil
}

func (s *choiceStep) Update(msg tea.Msg, settings *Settings) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		s.apply(settings, s.choices[s.cursor].id)
		return nil, nil
	}
	return s, nil
}

func (s *choiceStep) View(*Settings) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+c.label) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+c.label) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

// inputStep reads one line of text. The text input is built lazily on the
// first message because the placeholder may depend on earlier answers.
type inputStep struct {
	title       string
	placeholder string
	secret      bool

	skip     func(*Settings) bool
	optional func(*Settings) bool
	hint     func(*Settings) string
	apply    func(*Settings, string)

	input   textinput.Model
	started bool
	err     string
}

func (s *inputStep) Init() tea.Cmd {
	return nil
}

func (s *inputStep) start(settings *Settings) {
	s.input = textinput.New()
	s.input.CharLimit = 255
	s.input.Width = 48
	s.input.Placeholder = s.placeholder
	if s.hint != nil {
		if h := s.hint(settings); h != "" {
			s.input.Placeholder = h
		}
	}
	if s.secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
	s.input.Focus()
	s.started = true
}

func (s *inputStep) isOptional(settings *Settings) bool {
	return s.optional != nil && s.optional(settings)
}

func (s *inputStep) Update(msg tea.Msg, settings *Settings) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(settings) {
		return nil, nil
	}
	if !s.started {
		s.start(settings)
		return s, textinput.Blink
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !s.isOptional(settings) {
			s.err = s.title + " is required"
			return s, nil
		}
		s.apply(settings, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *inputStep) View(settings *Settings) string {
	if !s.started {
		return "Loading...\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Enter the %s", s.title)
	if s.isOptional(settings) {
		b.WriteString(hintStyle.Render(" (optional, press enter to skip)"))
	}
	b.WriteString(":\n\n" + s.input.View() + "\n\n")
	if s.err != "" {
		b.WriteString(errorStyle.Render(s.err) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}
