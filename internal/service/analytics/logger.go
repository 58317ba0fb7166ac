// Package analytics keeps the in-memory interaction log.
package analytics

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/intent"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const (
	DefaultCapacity = 1000

	defaultPrompt = "default"
	defaultModel  = "simulated"
)

type Option func(*Logger)

func WithCapacity(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

func WithTokenCounter(c TokenCounter) Option {
	return func(l *Logger) { l.tokens = c }
}

func WithIDGenerator(gen func() string) Option {
	return func(l *Logger) { l.newID = gen }
}

// Logger is a fixed-capacity FIFO of AILogEntry. When full, each new entry
// evicts the oldest one. All methods are safe for concurrent use and hand
// out copies, never references into the buffer.
type Logger struct {
	capacity int
	now      func() time.Time
	tokens   TokenCounter
	newID    func() string

	mu    sync.RWMutex
	buf   []core.AILogEntry
	start int
	size  int
}

func NewLogger(opts ...Option) *Logger {
	l := &Logger{
		capacity: DefaultCapacity,
		now:      time.Now,
		tokens:   RuneCounter{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.buf = make([]core.AILogEntry, l.capacity)
	return l
}

// Record stores an entry for a finished exchange and returns it.
func (l *Logger) Record(ctx context.Context, in core.Interaction) core.AILogEntry {
	now := l.now()
	latency := now.Sub(in.StartedAt).Milliseconds()
	if latency < 0 {
		latency = 0
	}

	entry := core.AILogEntry{
		ID:                  l.newID(),
		Timestamp:           now,
		SessionID:           in.SessionID,
		UserMessage:         in.UserMessage,
		DetectedIntent:      intent.DetectIntent(in.UserMessage),
		ExtractedParams:     intent.ExtractParams(in.UserMessage),
		PromptUsed:          orDefault(in.PromptUsed, defaultPrompt),
		ModelUsed:           orDefault(in.ModelUsed, defaultModel),
		TokensUsed:          core.TokenUsage{Input: l.tokens.Count(in.UserMessage), Output: l.tokens.Count(in.AIResponse)},
		LatencyMs:           latency,
		AIResponse:          in.AIResponse,
		ProductsRecommended: append([]string{}, in.ProductsRecommended...),
		WasFiltered:         in.WasFiltered,
		FilterReason:        in.FilterReason,
		FollowUpAsked:       asksFollowUp(in.AIResponse),
	}

	l.mu.Lock()
	l.push(entry)
	l.mu.Unlock()

	log.FromCtx(ctx).Debug().
		Str("id", entry.ID).
		Str("session", entry.SessionID).
		Str("intent", string(entry.DetectedIntent)).
		Str("model", entry.ModelUsed).
		Int64("latency_ms", entry.LatencyMs).
		Bool("filtered", entry.WasFiltered).
		Msg("interaction recorded")

	return entry.Clone()
}

// push appends e, overwriting the oldest entry when full. Callers hold mu.
func (l *Logger) push(e core.AILogEntry) {
	if l.size < l.capacity {
		l.buf[(l.start+l.size)%l.capacity] = e
		l.size++
		return
	}
	l.buf[l.start] = e
	l.start = (l.start + 1) % l.capacity
}

func (l *Logger) at(i int) *core.AILogEntry {
	return &l.buf[(l.start+i)%l.capacity]
}

// Recent returns the last n entries, oldest first.
func (l *Logger) Recent(n int) []core.AILogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.size {
		n = l.size
	}
	if n < 0 {
		n = 0
	}
	out := make([]core.AILogEntry, 0, n)
	for i := l.size - n; i < l.size; i++ {
		out = append(out, l.at(i).Clone())
	}
	return out
}

// BySession returns every entry of a session, oldest first.
func (l *Logger) BySession(sessionID string) []core.AILogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]core.AILogEntry, 0)
	for i := 0; i < l.size; i++ {
		if e := l.at(i); e.SessionID == sessionID {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Get returns the entry with the given id.
func (l *Logger) Get(id string) (core.AILogEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := 0; i < l.size; i++ {
		if e := l.at(i); e.ID == id {
			return e.Clone(), true
		}
	}
	return core.AILogEntry{}, false
}

// AttachFeedback sets the user's rating on an entry. A later call
// overwrites an earlier one. It reports whether the entry exists.
func (l *Logger) AttachFeedback(id string, fb core.Feedback) bool {
	if !fb.Valid() {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := 0; i < l.size; i++ {
		if e := l.at(i); e.ID == id {
			e.UserFeedback = &fb
			return true
		}
	}
	return false
}

func (l *Logger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

func (l *Logger) Capacity() int {
	return l.capacity
}

func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.buf)
	l.start, l.size = 0, 0
}

// Export serializes the whole buffer as indented JSON, oldest first.
func (l *Logger) Export() ([]byte, error) {
	return json.MarshalIndent(l.Recent(l.capacity), "", "  ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// asksFollowUp reports whether the reply ends by asking the user something.
func asksFollowUp(reply string) bool {
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	return strings.Contains(lines[len(lines)-1], "?")
}
