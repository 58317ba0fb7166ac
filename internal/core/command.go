package core

import "context"

// CmdRouter resolves slash commands typed into a chat transport.
// The bool result reports whether the input was a command at all.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
