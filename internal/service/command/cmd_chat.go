package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type ChatSession interface {
	Reset(sessionID string) []core.ChatMessage
	Feedback(sessionID string, fb core.Feedback) error
}

type NewChatCommand struct {
	chat      ChatSession
	formatter *ResponseFormatter
}

func NewNewChatCommand(chat ChatSession) *NewChatCommand {
	return &NewChatCommand{chat: chat, formatter: NewResponseFormatter()}
}

func (c *NewChatCommand) Name() string {
	return "new"
}

func (c *NewChatCommand) Description() string {
	return "Mulai percakapan baru"
}

// Execute replies with the welcome message that now opens the session.
func (c *NewChatCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	msgs := c.chat.Reset(sessionID)
	return msgs[0].Content, nil
}

type FeedbackCommand struct {
	chat      ChatSession
	formatter *ResponseFormatter
}

func NewFeedbackCommand(chat ChatSession) *FeedbackCommand {
	return &FeedbackCommand{chat: chat, formatter: NewResponseFormatter()}
}

func (c *FeedbackCommand) Name() string {
	return "feedback"
}

func (c *FeedbackCommand) Description() string {
	return "Nilai jawaban terakhir: good atau bad"
}

func (c *FeedbackCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 1 {
		return c.formatter.Usage("/feedback good|bad"), nil
	}

	var fb core.Feedback
	switch strings.ToLower(args[0]) {
	case "good", "bagus", "👍":
		fb = core.FeedbackPositive
	case "bad", "jelek", "👎":
		fb = core.FeedbackNegative
	default:
		return c.formatter.Usage("/feedback good|bad"), nil
	}

	if err := c.chat.Feedback(sessionID, fb); err != nil {
		return "", fmt.Errorf("belum ada jawaban untuk dinilai: %w", err)
	}
	return c.formatter.Success("Terima kasih atas penilaiannya!"), nil
}
