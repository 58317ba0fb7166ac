package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"google.golang.org/genai"
)

type Gemini struct {
	client      *genai.Client
	model       string
	temperature float64
}

func NewGemini(ctx context.Context, apiKey, model string, temperature float64, timeout time.Duration) (*Gemini, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: temperature}, nil
}

func (g *Gemini) Name() string {
	return "gemini:" + g.model
}

func (g *Gemini) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	config := &genai.GenerateContentConfig{}
	if g.temperature > 0 {
		t := float32(g.temperature)
		config.Temperature = &t
	}

	var contents []*genai.Content
	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			if config.SystemInstruction == nil {
				config.SystemInstruction = &genai.Content{}
			}
			config.SystemInstruction.Parts = append(config.SystemInstruction.Parts, &genai.Part{Text: m.Content})
		case core.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return core.Message{}, g.mapError(ctx, err)
	}

	text := result.Text()
	if text == "" {
		return core.Message{}, fmt.Errorf("gemini: %w: no text candidates", core.ErrEmptyOutcome)
	}
	return core.Message{Role: core.RoleAssistant, Content: text}, nil
}

func (g *Gemini) mapError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &core.UpstreamError{Service: "gemini", Status: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &core.UpstreamError{Service: "gemini", Status: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("gemini request: %w", ctxErr)
	}
	return fmt.Errorf("%w: gemini: %v", core.ErrUnavailable, err)
}
