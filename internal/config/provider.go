package config

import (
	"context"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

// Provider names accepted in GADGET_LLM_PROVIDER.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

var defaultModels = map[string]string{
	ProviderGroq:       "qwen/qwen3-32b",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemma-3-27b-it:free",
	ProviderAnthropic:  "claude-3-5-haiku-latest",
	ProviderGemini:     "gemini-2.5-flash",
	ProviderOllama:     "qwen3:8b",
}

type ProviderConfig struct {
	Provider    string        `env:"GADGET_LLM_PROVIDER" envDefault:"groq"`
	Model       string        `env:"GADGET_LLM_MODEL"`
	Temperature float64       `env:"GADGET_LLM_TEMPERATURE" envDefault:"0.5"`
	Timeout     time.Duration `env:"GADGET_LLM_TIMEOUT" envDefault:"30s"`

	GroqAPIKey       string `env:"GADGET_GROQ_API_KEY"`
	OpenAIAPIKey     string `env:"GADGET_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"GADGET_OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `env:"GADGET_ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `env:"GADGET_GEMINI_API_KEY"`

	OllamaBaseURL string `env:"GADGET_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"GADGET_OLLAMA_API_KEY"`

	CustomBaseURL string `env:"GADGET_CUSTOM_BASE_URL"`
	CustomAPIKey  string `env:"GADGET_CUSTOM_API_KEY"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	return c
}

func (c ProviderConfig) GetProvider() string {
	return c.Provider
}

// GetModel falls back to a per-provider default when no model is set.
func (c ProviderConfig) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}
