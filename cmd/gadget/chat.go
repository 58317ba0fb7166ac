package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/gadgetbot/internal/transport/cli"
	"github.com/sandevgo/gadgetbot/pkg/srv"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with GadgetBot in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		app := NewApp(ctx)

		rl, err := cli.NewReadLine(app.Pipeline, app.Router, app.Config.GetHistoryPath())
		if err != nil {
			return err
		}
		defer srv.StopServices(ctx, append(app.Services, rl))

		// The REPL owns the terminal, so it runs in the foreground instead
		// of going through srv.StartServices.
		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
