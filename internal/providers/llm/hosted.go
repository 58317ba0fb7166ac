package llm

import (
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
)

// Hosted OpenAI-compatible endpoints. Each only differs in base URL and
// headers.

func NewGroq(apiKey, model string, temperature float64, timeout time.Duration) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "groq",
		BaseURL:     "https://api.groq.com/openai",
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
	})
}

func NewOpenAI(apiKey, model string, temperature float64, timeout time.Duration) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "openai",
		BaseURL:     "https://api.openai.com",
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
	})
}

func NewOpenRouter(apiKey, model string, temperature float64, timeout time.Duration) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "openrouter",
		BaseURL:     "https://openrouter.ai/api",
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.BotRepositoryURL,
			"X-Title":      core.BotName,
		},
	})
}

// NewOllama talks to a local Ollama server; the key is optional.
func NewOllama(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "ollama",
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
	})
}

func NewCustomOpenAI(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:        "custom",
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
	})
}
