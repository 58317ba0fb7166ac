package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/gadgetbot/internal/config"
	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

// NewProvider creates the AIProvider selected by configuration. A hosted
// provider without its API key yields core.ErrNotConfigured so callers can
// fall through to offline answers.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.AIProvider, error) {
	provider := cfg.GetProvider()
	model := cfg.GetModel()

	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", model).
		Msg("starting llm provider")

	switch provider {
	case config.ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, missingKey(provider)
		}
		return NewGroq(cfg.GroqAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, missingKey(provider)
		}
		return NewOpenAI(cfg.OpenAIAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, missingKey(provider)
		}
		return NewOpenRouter(cfg.OpenRouterAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, missingKey(provider)
		}
		return NewAnthropic(cfg.AnthropicAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, missingKey(provider)
		}
		return NewGemini(ctx, cfg.GeminiAPIKey, model, cfg.Temperature, cfg.Timeout)
	case config.ProviderOllama:
		if model == "" {
			return nil, fmt.Errorf("%w: ollama needs GADGET_LLM_MODEL", core.ErrNotConfigured)
		}
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderCustom:
		if cfg.CustomBaseURL == "" || model == "" {
			return nil, fmt.Errorf("%w: custom provider needs GADGET_CUSTOM_BASE_URL and GADGET_LLM_MODEL", core.ErrNotConfigured)
		}
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, model, cfg.Temperature, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", core.ErrNotConfigured, provider)
	}
}

func missingKey(provider string) error {
	return fmt.Errorf("%w: %s api key is empty", core.ErrNotConfigured, provider)
}
