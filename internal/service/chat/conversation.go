package chat

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/gadgetbot/internal/core"
)

const WelcomeMessage = "👋 Halo! Saya **GadgetBot**.\n\nSilakan tanya seputar smartphone, spesifikasi, atau rekomendasi harga."

const (
	DefaultMaxSessions = 10000
	DefaultMaxMessages = 200
)

type ConversationsOption func(*Conversations)

// WithMaxSessions bounds the number of sessions held. Opening one more
// evicts the least recently used session.
func WithMaxSessions(n int) ConversationsOption {
	return func(c *Conversations) {
		if n > 0 {
			c.maxSessions = n
		}
	}
}

// WithMaxMessages bounds each session's sequence; older messages are
// dropped first.
func WithMaxMessages(n int) ConversationsOption {
	return func(c *Conversations) {
		if n > 0 {
			c.maxMessages = n
		}
	}
}

type conversation struct {
	id        string
	messages  []core.ChatMessage
	lastLogID string
}

// Conversations holds the message sequence of every session in memory.
// A session starts with the welcome message and can only be reset as a
// whole.
type Conversations struct {
	maxSessions int
	maxMessages int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*list.Element
	recency  *list.List // front is the most recently used
}

func NewConversations(opts ...ConversationsOption) *Conversations {
	c := &Conversations{
		maxSessions: DefaultMaxSessions,
		maxMessages: DefaultMaxMessages,
		now:         time.Now,
		sessions:    make(map[string]*list.Element),
		recency:     list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of sessions held.
func (c *Conversations) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Messages returns a copy of the session's sequence.
func (c *Conversations) Messages(sessionID string) []core.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv := c.get(sessionID)
	return append([]core.ChatMessage(nil), conv.messages...)
}

func (c *Conversations) Append(sessionID string, role core.ChatRole, content string, kind core.MessageType) core.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.newMessage(role, content, kind)
	conv := c.get(sessionID)
	conv.messages = append(conv.messages, msg)
	if over := len(conv.messages) - c.maxMessages; over > 0 {
		conv.messages = append(conv.messages[:0:0], conv.messages[over:]...)
	}
	return msg
}

// Reset drops the sequence, leaving only a fresh welcome message.
func (c *Conversations) Reset(sessionID string) []core.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv := c.get(sessionID)
	conv.messages = c.fresh(sessionID).messages
	conv.lastLogID = ""
	return append([]core.ChatMessage(nil), conv.messages...)
}

// LastLogID returns the interaction log id of the session's latest reply.
func (c *Conversations) LastLogID(sessionID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.sessions[sessionID]
	if !ok {
		return "", false
	}
	conv := el.Value.(*conversation)
	if conv.lastLogID == "" {
		return "", false
	}
	return conv.lastLogID, true
}

func (c *Conversations) setLastLogID(sessionID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.get(sessionID).lastLogID = id
}

// get returns the session marked as most recently used, creating it on
// first use. Callers hold mu.
func (c *Conversations) get(sessionID string) *conversation {
	if el, ok := c.sessions[sessionID]; ok {
		c.recency.MoveToFront(el)
		return el.Value.(*conversation)
	}

	for len(c.sessions) >= c.maxSessions {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.sessions, oldest.Value.(*conversation).id)
	}

	conv := c.fresh(sessionID)
	c.sessions[sessionID] = c.recency.PushFront(conv)
	return conv
}

func (c *Conversations) fresh(sessionID string) *conversation {
	return &conversation{
		id:       sessionID,
		messages: []core.ChatMessage{c.newMessage(core.ChatRoleBot, WelcomeMessage, core.MessageText)},
	}
}

func (c *Conversations) newMessage(role core.ChatRole, content string, kind core.MessageType) core.ChatMessage {
	return core.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
		Type:      kind,
	}
}
