package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/gadgetbot/configs"
	"github.com/sandevgo/gadgetbot/pkg/env"
)

// SaveStep writes .env and a starter SYSTEM.md to the runtime directory.
type SaveStep struct {
	runtimePath string
	err         error
}

func newSaveStep(runtimePath string) *SaveStep {
	return &SaveStep{runtimePath: runtimePath}
}

func (s *SaveStep) Init() tea.Cmd {
	return func() tea.Msg { return saveMsg{} }
}

type saveMsg struct{}

func (s *SaveStep) Update(msg tea.Msg, settings *Settings) (Step, tea.Cmd) {
	if _, ok := msg.(saveMsg); !ok {
		return s, nil
	}
	if err := Save(s.runtimePath, settings); err != nil {
		s.err = err
		return s, func() tea.Msg { return errMsg{err: err} }
	}
	return nil, nil
}

func (s *SaveStep) View(*Settings) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n"
	}
	return "Saving configuration...\n"
}

// Save writes settings to runtimePath/.env. An existing .env is never
// overwritten. SYSTEM.md is created only when missing so local prompt edits
// survive a reinstall.
func Save(runtimePath string, settings *Settings) error {
	if err := os.MkdirAll(runtimePath, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := env.MarshalEnv(settings)
	if err != nil {
		return err
	}
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", envPath, err)
	}

	systemPath := filepath.Join(runtimePath, "SYSTEM.md")
	if _, err := os.Stat(systemPath); os.IsNotExist(err) {
		data, err := configs.FS.ReadFile("SYSTEM.md")
		if err != nil {
			return fmt.Errorf("read embedded SYSTEM.md: %w", err)
		}
		if err := os.WriteFile(systemPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", systemPath, err)
		}
	}
	return nil
}
