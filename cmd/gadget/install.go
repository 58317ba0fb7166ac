package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/gadgetbot/internal/config"
	"github.com/sandevgo/gadgetbot/internal/service/installer"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Configure GadgetBot interactively",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		settings, err := installer.RunWizard(runtimePath)
		if err != nil {
			return err
		}

		logger.Info().
			Str("path", runtimePath).
			Str("provider", settings.Provider).
			Bool("catalog_search", settings.CatalogSearch).
			Bool("telegram", settings.EnableTelegram).
			Msg("configuration written")
		logger.Info().Msg("installation complete, run 'gadget start' or 'gadget chat'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
