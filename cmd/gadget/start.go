package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandevgo/gadgetbot/pkg/log"
	"github.com/sandevgo/gadgetbot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP API and the Telegram bot",
	Long:  `Opens the catalog database, wires the reply pipeline and runs every transport enabled in the configuration until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting gadgetbot")

		app := NewApp(ctx)
		transports, err := app.Transports(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize transports")
			return err
		}
		if len(transports) == 0 {
			logger.Warn().Msg("no transport enabled, set GADGET_ENABLE_HTTP or GADGET_ENABLE_TELEGRAM")
		}

		services := append(app.Services, transports...)
		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("gadgetbot has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
