package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/gadgetbot/internal/config"
	"github.com/sandevgo/gadgetbot/internal/core"
)

var ErrInterrupted = errors.New("installation interrupted")

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step is a single screen of the wizard. Update returns nil once the step
// is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, settings *Settings) (Step, tea.Cmd)
	View(settings *Settings) string
}

var providerChoices = []choice{
	{id: config.ProviderGroq, label: "Groq"},
	{id: config.ProviderGemini, label: "Google Gemini"},
	{id: config.ProviderOpenAI, label: "OpenAI"},
	{id: config.ProviderOpenRouter, label: "OpenRouter"},
	{id: config.ProviderAnthropic, label: "Anthropic"},
	{id: config.ProviderOllama, label: "Ollama (local)"},
	{id: config.ProviderCustom, label: "Custom OpenAI-compatible endpoint"},
}

var placeholders = map[string]string{
	config.ProviderGroq:       "gsk_...",
	config.ProviderOpenAI:     "sk-...",
	config.ProviderOpenRouter: "sk-or-v1-...",
	config.ProviderAnthropic:  "sk-ant-...",
	config.ProviderGemini:     "AIza...",
}

func getSteps(runtimePath string) []Step {
	return []Step{
		newChoiceStep("Select the AI provider:", providerChoices, func(s *Settings, id string) {
			s.Provider = id
		}),
		&inputStep{
			title:       "Base URL",
			placeholder: "http://localhost:11434",
			skip:        func(s *Settings) bool { return !s.needsBaseURL() },
			apply:       (*Settings).SetBaseURL,
		},
		&inputStep{
			title:    "API key",
			secret:   true,
			optional: (*Settings).apiKeyOptional,
			hint:     func(s *Settings) string { return placeholders[s.Provider] },
			apply:    (*Settings).SetAPIKey,
		},
		&inputStep{
			title:    "Model",
			optional: func(s *Settings) bool { return s.Provider != config.ProviderCustom },
			hint: func(s *Settings) string {
				return config.ProviderConfig{Provider: s.Provider}.GetModel()
			},
			apply: func(s *Settings, v string) { s.Model = v },
		},
		newChoiceStep("Answer from the live catalog when the AI provider fails?", []choice{
			{id: "no", label: "No, use canned replies"},
			{id: "yes", label: "Yes, search the catalog API"},
		}, func(s *Settings, id string) {
			s.CatalogSearch = id == "yes"
		}),
		&inputStep{
			title:       "Telegram bot token",
			placeholder: "123456789:ABCDEF...",
			secret:      true,
			optional:    func(*Settings) bool { return true },
			apply:       (*Settings).SetTelegramToken,
		},
		newSaveStep(runtimePath),
	}
}

type model struct {
	steps       []Step
	currentStep int
	settings    *Settings
	quitting    bool
	err         error
}

func newModel(runtimePath string) model {
	return model{
		steps:    getSteps(runtimePath),
		settings: &Settings{},
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.settings)
	if next == nil {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	m.steps[m.currentStep] = next
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Installing "+core.BotName+" 📱") + "\n\n" + m.steps[m.currentStep].View(m.settings)
}

type errMsg struct{ err error }

// RunWizard walks the user through the settings and writes them to
// runtimePath/.env.
func RunWizard(runtimePath string) (*Settings, error) {
	p := tea.NewProgram(newModel(runtimePath), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.err != nil {
		return nil, final.err
	}
	if final.quitting {
		return nil, ErrInterrupted
	}
	return final.settings, nil
}
