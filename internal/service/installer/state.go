package installer

import (
	"strings"

	"github.com/sandevgo/gadgetbot/internal/config"
)

// Settings is what the wizard collects. Field tags match the keys read by
// internal/config so the result can be written straight to .env.
type Settings struct {
	Provider string `env:"GADGET_LLM_PROVIDER"`
	Model    string `env:"GADGET_LLM_MODEL"`

	GroqAPIKey       string `env:"GADGET_GROQ_API_KEY"`
	OpenAIAPIKey     string `env:"GADGET_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"GADGET_OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `env:"GADGET_ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `env:"GADGET_GEMINI_API_KEY"`
	OllamaBaseURL    string `env:"GADGET_OLLAMA_BASE_URL"`
	OllamaAPIKey     string `env:"GADGET_OLLAMA_API_KEY"`
	CustomBaseURL    string `env:"GADGET_CUSTOM_BASE_URL"`
	CustomAPIKey     string `env:"GADGET_CUSTOM_API_KEY"`

	CatalogSearch  bool   `env:"GADGET_CATALOG_SEARCH"`
	EnableTelegram bool   `env:"GADGET_ENABLE_TELEGRAM"`
	TelegramToken  string `env:"GADGET_TELEGRAM_TOKEN"`
}

// SetAPIKey stores key in the field belonging to the selected provider.
func (s *Settings) SetAPIKey(key string) {
	key = strings.TrimSpace(key)
	switch s.Provider {
	case config.ProviderGroq:
		s.GroqAPIKey = key
	case config.ProviderOpenAI:
		s.OpenAIAPIKey = key
	case config.ProviderOpenRouter:
		s.OpenRouterAPIKey = key
	case config.ProviderAnthropic:
		s.AnthropicAPIKey = key
	case config.ProviderGemini:
		s.GeminiAPIKey = key
	case config.ProviderOllama:
		s.OllamaAPIKey = key
	case config.ProviderCustom:
		s.CustomAPIKey = key
	}
}

// SetBaseURL is only meaningful for self-hosted providers.
func (s *Settings) SetBaseURL(url string) {
	url = strings.TrimSpace(url)
	switch s.Provider {
	case config.ProviderOllama:
		s.OllamaBaseURL = url
	case config.ProviderCustom:
		s.CustomBaseURL = url
	}
}

func (s *Settings) SetTelegramToken(token string) {
	s.TelegramToken = strings.TrimSpace(token)
	s.EnableTelegram = s.TelegramToken != ""
}

func (s *Settings) needsBaseURL() bool {
	return s.Provider == config.ProviderOllama || s.Provider == config.ProviderCustom
}

func (s *Settings) apiKeyOptional() bool {
	return s.Provider == config.ProviderOllama || s.Provider == config.ProviderCustom
}
