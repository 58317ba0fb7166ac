package core

import "time"

const (
	BotName          = "GadgetBot"
	BotUserAgent     = "GadgetBot/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/gadgetbot"
	BotVersion       = "0.1.0"
)

// Roles used in completion requests.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn sent to or received from a language model.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ChatRole identifies the author of a conversation message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

type MessageType string

const (
	MessageText         MessageType = "text"
	MessageVoice        MessageType = "voice"
	MessageProduct      MessageType = "product"
	MessageImageGallery MessageType = "image-gallery"
)

// ChatMessage is an entry of a conversation as seen by the user.
// It is never modified after being appended.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      ChatRole    `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
}
