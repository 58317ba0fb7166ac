package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/pkg/conv"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const defaultSessionID = "cli-local"

type ChatHandler interface {
	Handle(ctx context.Context, sessionID, text string) (chat.Turn, error)
}

type ReadLine struct {
	chat ChatHandler
	cmds core.CmdRouter
	rl   *readline.Instance
}

func NewReadLine(chat ChatHandler, cmds core.CmdRouter, historyPath string) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "📱 > ",
		HistoryFile:     historyPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(cmds),
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		chat: chat,
		cmds: cmds,
		rl:   rl,
	}, nil
}

func newCompleter(cmds core.CmdRouter) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0)
	for _, cmd := range cmds.ListCommands() {
		items = append(items, readline.PcItem("/"+cmd.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	out := r.rl.Stdout()

	if welcome, ok := r.cmds.Execute(ctx, defaultSessionID, "/new"); ok {
		fmt.Fprintln(out, conv.MarkdownToText(welcome))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, ok := r.cmds.Execute(ctx, defaultSessionID, line); ok {
			fmt.Fprintln(out, conv.MarkdownToText(reply))
			continue
		}

		turn, err := r.chat.Handle(ctx, defaultSessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("chat turn failed")
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", conv.MarkdownToText(turn.Reply))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
