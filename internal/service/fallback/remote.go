package fallback

import (
	"context"
	"fmt"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/providers/llm"
	"github.com/sandevgo/gadgetbot/internal/service/intent"
	"github.com/sandevgo/gadgetbot/internal/service/recommend"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

type namer interface {
	Name() string
}

type RemoteOption func(*Remote)

// WithRemoteAdvisor appends the matching catalog facts to the system
// instruction of every constrained message.
func WithRemoteAdvisor(a *recommend.Advisor) RemoteOption {
	return func(r *Remote) { r.advisor = a }
}

// Remote asks a hosted language model under the fixed system instruction.
type Remote struct {
	ai      core.AIProvider
	prompt  string
	advisor *recommend.Advisor
}

// NewRemote accepts a nil provider; every attempt then fails with
// core.ErrNotConfigured.
func NewRemote(ai core.AIProvider, systemPrompt string, opts ...RemoteOption) *Remote {
	r := &Remote{ai: ai, prompt: systemPrompt}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Remote) Name() string {
	return "remote"
}

func (r *Remote) Model() string {
	if n, ok := r.ai.(namer); ok {
		return n.Name()
	}
	return "remote"
}

func (r *Remote) Prompt() string {
	return r.prompt
}

func (r *Remote) Attempt(ctx context.Context, message string) (Reply, error) {
	text, err := r.Ask(ctx, message)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Source: r.Name(), Model: r.Model()}, nil
}

// Ask returns the visible answer with reasoning segments removed.
func (r *Remote) Ask(ctx context.Context, message string) (string, error) {
	if r.ai == nil {
		return "", fmt.Errorf("remote assistant: %w", core.ErrNotConfigured)
	}

	history := []core.Message{
		{Role: core.RoleSystem, Content: r.systemPrompt(ctx, message)},
		{Role: core.RoleUser, Content: message},
	}

	resp, err := r.ai.Chat(ctx, history)
	if err != nil {
		return "", err
	}

	text := llm.StripReasoning(resp.Content)
	if text == "" {
		return "", fmt.Errorf("remote assistant: %w", core.ErrEmptyOutcome)
	}
	return text, nil
}

// systemPrompt grounds the instruction in catalog facts when the message
// names a brand, RAM need or budget. A failed lookup keeps the bare prompt.
func (r *Remote) systemPrompt(ctx context.Context, message string) string {
	if r.advisor == nil {
		return r.prompt
	}
	params := intent.ExtractParams(message)
	if !params.Constrained() {
		return r.prompt
	}

	facts, err := r.advisor.Recommend(ctx, params)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("catalog facts unavailable")
		return r.prompt
	}
	return r.prompt + "\n\n" + recommend.FactSheet(facts)
}
