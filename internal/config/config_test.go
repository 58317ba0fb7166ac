package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("GADGET_RUNTIME_PATH", "/tmp/gadget-test")

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, "/tmp/gadget-test", cfg.GetRuntimePath())
	assert.Equal(t, filepath.Join("/tmp/gadget-test", "catalog.db"), cfg.GetDatabasePath())
	assert.Equal(t, filepath.Join("/tmp/gadget-test", "SYSTEM.md"), cfg.GetSystemPath())
	assert.True(t, cfg.EnableHTTP)
	assert.False(t, cfg.IsTelegramSelected())
	assert.Equal(t, 1000, cfg.LogCapacity)
	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.Equal(t, 200, cfg.SessionMessages)
	assert.Equal(t, 40*time.Second, cfg.ResponseDeadline)
	assert.False(t, cfg.StrictResponseGuard)
	assert.False(t, cfg.CatalogSearch)
	assert.Zero(t, cfg.SimulationDelay)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("GADGET_RUNTIME_PATH", "/tmp/gadget-test")
	t.Setenv("GADGET_CATALOG_SEARCH", "true")
	t.Setenv("GADGET_LOG_CAPACITY", "50")
	t.Setenv("GADGET_MAX_SESSIONS", "25")
	t.Setenv("GADGET_SIMULATION_DELAY", "1s")
	t.Setenv("GADGET_CORS_ORIGINS", "http://localhost:3000,https://gadget.example")

	cfg := NewAppConfig(context.Background())

	assert.True(t, cfg.CatalogSearch)
	assert.Equal(t, 50, cfg.LogCapacity)
	assert.Equal(t, 25, cfg.MaxSessions)
	assert.Equal(t, time.Second, cfg.SimulationDelay)
	assert.Equal(t, []string{"http://localhost:3000", "https://gadget.example"}, cfg.CORSOrigins)
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".gadgetbot"), resolveRuntimePath(""))
	assert.Equal(t, filepath.Join("/home/tester", "bot"), resolveRuntimePath("bot"))
	assert.Equal(t, "/srv/bot", resolveRuntimePath("/srv/bot"))
}

func TestProviderConfig_GetModel(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{name: "explicit model wins", provider: ProviderGroq, model: "llama-3.3-70b-versatile", want: "llama-3.3-70b-versatile"},
		{name: "groq default", provider: ProviderGroq, want: "qwen/qwen3-32b"},
		{name: "gemini default", provider: ProviderGemini, want: "gemini-2.5-flash"},
		{name: "custom has no default", provider: ProviderCustom, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ProviderConfig{Provider: tt.provider, Model: tt.model}
			assert.Equal(t, tt.want, cfg.GetModel())
		})
	}
}

func TestNewProviderConfig_NormalizesProvider(t *testing.T) {
	t.Setenv("GADGET_LLM_PROVIDER", " OpenRouter ")
	cfg := NewProviderConfig(context.Background())
	assert.Equal(t, ProviderOpenRouter, cfg.GetProvider())
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestTelegramConfig_IsAllowed(t *testing.T) {
	public := TelegramConfig{}
	assert.True(t, public.IsAllowed(42))

	restricted := TelegramConfig{AllowedUsers: []int64{7, 9}}
	assert.True(t, restricted.IsAllowed(9))
	assert.False(t, restricted.IsAllowed(42))
}
