package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	resetFor    string
	feedback    core.Feedback
	feedbackErr error
}

func (s *stubChat) Reset(sessionID string) []core.ChatMessage {
	s.resetFor = sessionID
	return []core.ChatMessage{{Role: core.ChatRoleBot, Content: "welcome"}}
}

func (s *stubChat) Feedback(sessionID string, fb core.Feedback) error {
	s.feedback = fb
	return s.feedbackErr
}

type stubStats struct{ stats core.LogStats }

func (s stubStats) Stats() core.LogStats { return s.stats }

type stubProvider struct{ provider, model string }

func (s stubProvider) GetProvider() string { return s.provider }
func (s stubProvider) GetModel() string    { return s.model }

func newTestRouter(chat *stubChat, stats core.LogStats) *Router {
	return NewRouter(NewCommands(chat, stubStats{stats: stats}, stubProvider{"groq", "qwen/qwen3-32b"}))
}

func TestRouter_NotACommand(t *testing.T) {
	r := newTestRouter(&stubChat{}, core.LogStats{})
	out, ok := r.Execute(context.Background(), "s", "hp samsung")
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestRouter_Unknown(t *testing.T) {
	r := newTestRouter(&stubChat{}, core.LogStats{})
	out, ok := r.Execute(context.Background(), "s", "/nope")
	assert.True(t, ok)
	assert.Contains(t, out, "/nope")
}

func TestRouter_New(t *testing.T) {
	chat := &stubChat{}
	r := newTestRouter(chat, core.LogStats{})

	out, ok := r.Execute(context.Background(), "s1", "/new@gadget_bot")
	assert.True(t, ok)
	assert.Equal(t, "welcome", out)
	assert.Equal(t, "s1", chat.resetFor)
}

func TestRouter_Feedback(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		err          error
		wantFeedback core.Feedback
		wantContains string
	}{
		{"good", "/feedback good", nil, core.FeedbackPositive, "Terima kasih"},
		{"bad upper case", "/feedback BAD", nil, core.FeedbackNegative, "Terima kasih"},
		{"missing arg", "/feedback", nil, "", "/feedback good|bad"},
		{"unknown arg", "/feedback meh", nil, "", "/feedback good|bad"},
		{"nothing to rate", "/feedback good", core.ErrNotFound, core.FeedbackPositive, "gagal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &stubChat{feedbackErr: tt.err}
			r := newTestRouter(chat, core.LogStats{})

			out, ok := r.Execute(context.Background(), "s", tt.input)
			assert.True(t, ok)
			assert.Contains(t, out, tt.wantContains)
			assert.Equal(t, tt.wantFeedback, chat.feedback)
		})
	}
}

func TestRouter_Stats(t *testing.T) {
	r := newTestRouter(&stubChat{}, core.LogStats{
		TotalQueries:      3,
		AverageLatencyMs:  120,
		FilterRatePercent: 33.3,
		IntentHistogram:   map[core.QueryIntent]int{core.IntentBrandSearch: 2, core.IntentOffTopic: 1},
		BrandHistogram:    map[string]int{"Samsung": 2},
	})

	out, ok := r.Execute(context.Background(), "s", "/stats")
	require.True(t, ok)
	assert.Contains(t, out, "`3`")
	assert.Contains(t, out, "120 ms")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "brand_search: 2")
	assert.Contains(t, out, "Samsung: 2")
	assert.Less(t, strings.Index(out, "brand_search"), strings.Index(out, "off_topic"))
}

func TestRouter_HelpListsEverything(t *testing.T) {
	r := newTestRouter(&stubChat{}, core.LogStats{})
	out, ok := r.Execute(context.Background(), "s", "/help")
	require.True(t, ok)

	for _, name := range []string{"/new", "/help", "/stats", "/feedback", "/model"} {
		assert.Contains(t, out, name)
	}

	names := make([]string, 0)
	for _, cmd := range r.ListCommands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"feedback", "help", "model", "new", "stats"}, names)
}

func TestRouter_Model(t *testing.T) {
	r := newTestRouter(&stubChat{}, core.LogStats{})
	out, ok := r.Execute(context.Background(), "s", "/model")
	require.True(t, ok)
	assert.Contains(t, out, "groq")
	assert.Contains(t, out, "qwen/qwen3-32b")
}

type failingCommand struct{}

func (failingCommand) Name() string        { return "boom" }
func (failingCommand) Description() string { return "fails" }
func (failingCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return "", errors.New("kaput")
}

func TestRouter_CommandError(t *testing.T) {
	r := New([]core.Command{failingCommand{}})
	out, ok := r.Execute(context.Background(), "s", "/boom")
	assert.True(t, ok)
	assert.Contains(t, out, "kaput")
}
