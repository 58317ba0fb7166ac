package chat

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
	"github.com/sandevgo/gadgetbot/internal/service/fallback"
	"github.com/sandevgo/gadgetbot/internal/service/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	reply  fallback.Reply
	calls  int
	cancel context.CancelFunc
}

func (s *stubResponder) Respond(ctx context.Context, message string) fallback.Reply {
	s.calls++
	if s.cancel != nil {
		s.cancel()
	}
	return s.reply
}

func newTestPipeline(r Responder, policy guard.Policy) *Pipeline {
	return NewPipeline(guard.New(policy), r, analytics.NewLogger(), NewConversations())
}

func TestPipeline_Handle(t *testing.T) {
	r := &stubResponder{reply: fallback.Reply{
		Text:       "Galaxy S24 harga Rp 12.999.000. Mau lihat yang lain?",
		Source:     "remote",
		Model:      "groq:qwen",
		ProductIDs: []string{"SAM-S24"},
	}}
	p := newTestPipeline(r, guard.FailOpen)

	turn, err := p.Handle(context.Background(), "s1", "  hp samsung murah  ")
	require.NoError(t, err)

	assert.Equal(t, r.reply.Text, turn.Reply)
	assert.False(t, turn.Filtered)
	assert.Equal(t, core.IntentBrandSearch, turn.Intent)
	assert.Equal(t, "remote", turn.Source)
	require.NotEmpty(t, turn.LogID)

	entry, ok := p.Logger().Get(turn.LogID)
	require.True(t, ok)
	assert.Equal(t, "s1", entry.SessionID)
	assert.Equal(t, "hp samsung murah", entry.UserMessage)
	assert.Equal(t, "groq:qwen", entry.ModelUsed)
	assert.Equal(t, []string{"SAM-S24"}, entry.ProductsRecommended)
	assert.True(t, entry.FollowUpAsked)

	msgs := p.Conversations().Messages("s1")
	require.Len(t, msgs, 3)
	assert.Equal(t, WelcomeMessage, msgs[0].Content)
	assert.Equal(t, core.ChatRoleUser, msgs[1].Role)
	assert.Equal(t, core.ChatRoleBot, msgs[2].Role)
	assert.Equal(t, core.MessageProduct, msgs[2].Type)
}

func TestPipeline_BlockedInput(t *testing.T) {
	r := &stubResponder{}
	p := newTestPipeline(r, guard.FailOpen)

	turn, err := p.Handle(context.Background(), "s1", "cara hack wifi")
	require.NoError(t, err)

	assert.Equal(t, 0, r.calls, "blocked input never reaches providers")
	assert.Equal(t, guard.Deflection, turn.Reply)
	assert.True(t, turn.Filtered)
	assert.Contains(t, turn.FilterReason, "hack")

	entry, ok := p.Logger().Get(turn.LogID)
	require.True(t, ok)
	assert.True(t, entry.WasFiltered)
	assert.Equal(t, turn.FilterReason, entry.FilterReason)
}

func TestPipeline_FilteredResponse(t *testing.T) {
	tests := []struct {
		name         string
		policy       guard.Policy
		reply        string
		wantFiltered bool
	}{
		{"blocked content", guard.FailOpen, "Ayo main judi online", true},
		{"unclassified passes when open", guard.FailOpen, "Halo juga!", false},
		{"unclassified denied when closed", guard.FailClosed, "Halo juga!", true},
		{"domain reply passes", guard.FailClosed, "Poco F5 cocok untuk gaming", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubResponder{reply: fallback.Reply{Text: tt.reply, Source: "remote", ProductIDs: []string{"1"}}}
			p := newTestPipeline(r, tt.policy)

			turn, err := p.Handle(context.Background(), "s", "rekomendasi dong")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiltered, turn.Filtered)
			if tt.wantFiltered {
				assert.Equal(t, guard.Deflection, turn.Reply)
				entry, _ := p.Logger().Get(turn.LogID)
				assert.Empty(t, entry.ProductsRecommended)
			} else {
				assert.Equal(t, tt.reply, turn.Reply)
			}
		})
	}
}

func TestPipeline_EmptyMessage(t *testing.T) {
	p := newTestPipeline(&stubResponder{}, guard.FailOpen)
	_, err := p.Handle(context.Background(), "s", "   ")
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, 0, p.Logger().Len())
}

func TestPipeline_CancelledTurnNotRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &stubResponder{reply: fallback.Reply{Text: "Galaxy S24"}, cancel: cancel}
	p := newTestPipeline(r, guard.FailOpen)

	_, err := p.Handle(ctx, "s", "samsung")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.Logger().Len())

	msgs := p.Conversations().Messages("s")
	require.Len(t, msgs, 2)
	assert.Equal(t, core.ChatRoleUser, msgs[1].Role)
}

func TestPipeline_DefaultSession(t *testing.T) {
	p := newTestPipeline(&stubResponder{reply: fallback.Reply{Text: "hp bagus"}}, guard.FailOpen)
	turn, err := p.Handle(context.Background(), "", "halo")
	require.NoError(t, err)

	entry, _ := p.Logger().Get(turn.LogID)
	assert.Equal(t, DefaultSession, entry.SessionID)
}

func TestPipeline_Feedback(t *testing.T) {
	p := newTestPipeline(&stubResponder{reply: fallback.Reply{Text: "hp bagus"}}, guard.FailOpen)

	assert.ErrorIs(t, p.Feedback("s", core.FeedbackPositive), core.ErrNotFound)

	turn, err := p.Handle(context.Background(), "s", "halo")
	require.NoError(t, err)

	require.NoError(t, p.Feedback("s", core.FeedbackPositive))
	require.NoError(t, p.Feedback("s", core.FeedbackNegative))

	entry, _ := p.Logger().Get(turn.LogID)
	require.NotNil(t, entry.UserFeedback)
	assert.Equal(t, core.FeedbackNegative, *entry.UserFeedback)

	assert.ErrorIs(t, p.Feedback("s", core.Feedback("meh")), core.ErrValidation)
}

func TestConversations_Reset(t *testing.T) {
	c := NewConversations()
	c.Append("s", core.ChatRoleUser, "halo", core.MessageText)
	c.setLastLogID("s", "log-1")

	msgs := c.Reset("s")
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeMessage, msgs[0].Content)
	assert.Equal(t, core.ChatRoleBot, msgs[0].Role)

	_, ok := c.LastLogID("s")
	assert.False(t, ok)
}

func TestConversations_MessagesAreCopies(t *testing.T) {
	c := NewConversations()
	c.now = func() time.Time { return time.Unix(0, 0) }

	msgs := c.Messages("s")
	msgs[0].Content = "changed"

	assert.Equal(t, WelcomeMessage, c.Messages("s")[0].Content)
	assert.Equal(t, time.Unix(0, 0), c.Messages("s")[0].Timestamp)
}

func TestConversations_MessageCap(t *testing.T) {
	c := NewConversations(WithMaxMessages(3))
	for _, text := range []string{"satu", "dua", "tiga", "empat"} {
		c.Append("s", core.ChatRoleUser, text, core.MessageText)
	}

	msgs := c.Messages("s")
	require.Len(t, msgs, 3)
	assert.Equal(t, "dua", msgs[0].Content)
	assert.Equal(t, "empat", msgs[2].Content)
}

func TestConversations_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewConversations(WithMaxSessions(2))
	c.setLastLogID("a", "log-a")
	c.setLastLogID("b", "log-b")

	// Touching a leaves b as the oldest.
	c.Append("a", core.ChatRoleUser, "halo", core.MessageText)
	c.Append("c", core.ChatRoleUser, "hai", core.MessageText)

	assert.Equal(t, 2, c.Len())
	id, ok := c.LastLogID("a")
	assert.True(t, ok)
	assert.Equal(t, "log-a", id)
	_, ok = c.LastLogID("b")
	assert.False(t, ok)

	// An evicted session starts over.
	msgs := c.Messages("b")
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeMessage, msgs[0].Content)
	assert.Equal(t, 2, c.Len())
}

func TestConversations_DefaultBounds(t *testing.T) {
	c := NewConversations(WithMaxSessions(0), WithMaxMessages(-1))
	assert.Equal(t, DefaultMaxSessions, c.maxSessions)
	assert.Equal(t, DefaultMaxMessages, c.maxMessages)
}
