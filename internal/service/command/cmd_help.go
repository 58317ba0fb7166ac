package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type commandLister interface {
	ListCommands() []core.Command
}

type HelpCommand struct {
	lister    commandLister
	formatter *ResponseFormatter
}

func NewHelpCommand(lister commandLister) *HelpCommand {
	return &HelpCommand{lister: lister, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Daftar perintah"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	cmds := c.lister.ListCommands()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("/%s - %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Perintah GadgetBot"),
		c.formatter.List(items),
		"Atau langsung tanya, misalnya: HP gaming budget 5 juta",
	), nil
}
