package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/gadgetbot/internal/transport/mcp"
	"github.com/sandevgo/gadgetbot/pkg/srv"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve GadgetBot tools over MCP on stdio",
	Long:  `Runs a Model Context Protocol server on stdin/stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		app := NewApp(ctx)
		defer srv.StopServices(ctx, app.Services)

		server := mcp.NewServer(app.Pipeline, app.Listings, app.Pipeline.Logger())
		return server.Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
