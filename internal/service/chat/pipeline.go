// Package chat runs one conversational turn: input filtering, the fallback
// chain, output filtering and interaction logging.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
	"github.com/sandevgo/gadgetbot/internal/service/fallback"
	"github.com/sandevgo/gadgetbot/internal/service/guard"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const (
	DefaultSession = "default"

	sourceInputGuard = "input_guard"
)

type Responder interface {
	Respond(ctx context.Context, message string) fallback.Reply
}

// Turn is the outcome of one handled message.
type Turn struct {
	Reply        string           `json:"reply"`
	LogID        string           `json:"log_id"`
	Filtered     bool             `json:"filtered"`
	FilterReason string           `json:"filter_reason,omitempty"`
	Intent       core.QueryIntent `json:"intent"`
	Source       string           `json:"source"`
}

type Pipeline struct {
	guard         *guard.Guard
	responder     Responder
	logger        *analytics.Logger
	conversations *Conversations
}

func NewPipeline(g *guard.Guard, responder Responder, logger *analytics.Logger, conversations *Conversations) *Pipeline {
	return &Pipeline{
		guard:         g,
		responder:     responder,
		logger:        logger,
		conversations: conversations,
	}
}

func (p *Pipeline) Conversations() *Conversations {
	return p.conversations
}

func (p *Pipeline) Logger() *analytics.Logger {
	return p.logger
}

// Handle answers text for the session. When ctx ends before the reply is
// ready, nothing is logged and no bot message is appended.
func (p *Pipeline) Handle(ctx context.Context, sessionID, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, fmt.Errorf("%w: message is empty", core.ErrValidation)
	}
	if sessionID == "" {
		sessionID = DefaultSession
	}

	started := time.Now()
	p.conversations.Append(sessionID, core.ChatRoleUser, text, core.MessageText)

	var reply fallback.Reply
	var filtered bool
	var reason string

	if verdict := p.guard.ValidateUserInput(text); !verdict.Allowed {
		reply = fallback.Reply{Text: guard.Deflection, Source: sourceInputGuard}
		filtered, reason = true, verdict.Reason
	} else {
		reply = p.responder.Respond(ctx, text)
		if verdict := p.guard.ValidateResponse(reply.Text); !verdict.Allowed {
			reply.Text = guard.Deflection
			reply.ProductIDs = nil
			filtered, reason = true, verdict.Reason
		}
	}

	if err := ctx.Err(); err != nil {
		log.FromCtx(ctx).Debug().Str("session", sessionID).Msg("turn cancelled, not recorded")
		return Turn{}, err
	}

	if filtered {
		log.FromCtx(ctx).Info().
			Str("session", sessionID).
			Str("source", reply.Source).
			Str("reason", reason).
			Msg("message deflected")
	}

	entry := p.logger.Record(ctx, core.Interaction{
		SessionID:           sessionID,
		UserMessage:         text,
		AIResponse:          reply.Text,
		StartedAt:           started,
		ProductsRecommended: reply.ProductIDs,
		WasFiltered:         filtered,
		FilterReason:        reason,
		PromptUsed:          reply.Source,
		ModelUsed:           reply.Model,
	})

	kind := core.MessageText
	if len(reply.ProductIDs) > 0 {
		kind = core.MessageProduct
	}
	p.conversations.Append(sessionID, core.ChatRoleBot, reply.Text, kind)
	p.conversations.setLastLogID(sessionID, entry.ID)

	return Turn{
		Reply:        reply.Text,
		LogID:        entry.ID,
		Filtered:     filtered,
		FilterReason: reason,
		Intent:       entry.DetectedIntent,
		Source:       reply.Source,
	}, nil
}

// Feedback rates the latest reply of the session.
func (p *Pipeline) Feedback(sessionID string, fb core.Feedback) error {
	if !fb.Valid() {
		return fmt.Errorf("%w: unknown feedback %q", core.ErrValidation, fb)
	}
	id, ok := p.conversations.LastLogID(sessionID)
	if !ok {
		return fmt.Errorf("session %q has no rated reply: %w", sessionID, core.ErrNotFound)
	}
	if !p.logger.AttachFeedback(id, fb) {
		return fmt.Errorf("log entry %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// Reset starts a new chat for the session.
func (p *Pipeline) Reset(sessionID string) []core.ChatMessage {
	return p.conversations.Reset(sessionID)
}
