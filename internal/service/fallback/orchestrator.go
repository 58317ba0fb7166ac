// Package fallback answers a message through an ordered chain of response
// providers. The chain always ends in the offline simulation, so a turn
// never goes unanswered.
package fallback

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

// Reply is a candidate answer and where it came from.
type Reply struct {
	Text       string
	Source     string
	Model      string
	ProductIDs []string
}

// Provider is one tier of the chain.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, message string) (Reply, error)
}

// Tier binds a provider to its own timeout. Zero means no per-tier limit.
type Tier struct {
	Provider Provider
	Timeout  time.Duration
}

type Orchestrator struct {
	tiers    []Tier
	last     *Simulation
	deadline time.Duration
}

// NewOrchestrator tries tiers in order under a shared deadline, then falls
// back to sim which runs regardless of that deadline.
func NewOrchestrator(sim *Simulation, deadline time.Duration, tiers ...Tier) *Orchestrator {
	return &Orchestrator{
		tiers:    tiers,
		last:     sim,
		deadline: deadline,
	}
}

// Respond returns the first usable reply. It never fails and never returns
// empty text.
func (o *Orchestrator) Respond(ctx context.Context, message string) Reply {
	logger := log.FromCtx(ctx)

	chainCtx, cancel := o.chainContext(ctx)
	defer cancel()

	for _, tier := range o.tiers {
		if chainCtx.Err() != nil {
			logger.Warn().Err(chainCtx.Err()).Msg("response deadline reached, skipping remaining tiers")
			break
		}

		start := time.Now()
		reply, err := o.attempt(chainCtx, tier, message)
		if err == nil {
			logger.Debug().
				Str("tier", tier.Provider.Name()).
				Dur("elapsed", time.Since(start)).
				Msg("tier answered")
			return reply
		}
		logger.Warn().
			Err(err).
			Str("tier", tier.Provider.Name()).
			Dur("elapsed", time.Since(start)).
			Msg("tier failed, falling through")
	}

	return o.last.Answer(ctx, message)
}

func (o *Orchestrator) attempt(ctx context.Context, tier Tier, message string) (Reply, error) {
	if tier.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tier.Timeout)
		defer cancel()
	}

	reply, err := tier.Provider.Attempt(ctx, message)
	if err != nil {
		return Reply{}, err
	}
	if strings.TrimSpace(reply.Text) == "" {
		return Reply{}, core.ErrEmptyOutcome
	}
	if reply.Source == "" {
		reply.Source = tier.Provider.Name()
	}
	return reply, nil
}

func (o *Orchestrator) chainContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.deadline <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.deadline)
}
