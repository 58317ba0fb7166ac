package command

import (
	"github.com/sandevgo/gadgetbot/internal/core"
)

// NewCommands builds the slash commands shared by every chat transport.
// /help is added by NewRouter since it lists the router itself.
func NewCommands(chat ChatSession, stats StatsSource, provider ProviderInfo) []core.Command {
	return []core.Command{
		NewNewChatCommand(chat),
		NewFeedbackCommand(chat),
		NewStatsCommand(stats),
		NewModelCommand(provider),
	}
}

func NewRouter(commands []core.Command) *Router {
	r := New(commands)
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}
