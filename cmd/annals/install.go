package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/service/installer"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Create the runtime .env with provider credentials",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		envPath := config.GetEnvFilePath()
		if _, err := os.Stat(envPath); err == nil {
			return fmt.Errorf("%w at %s, remove it to reconfigure", installer.ErrEnvExists, envPath)
		}

		logger.Info().Msg("starting installation process")

		// run wizard (includes save step)
		if _, err := installer.RunWizard(envPath); err != nil {
			return err
		}

		logger.Info().Str("path", envPath).Msg("configuration saved")
		logger.Info().Msg("Installation complete! You can now run 'annals extract <file>'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
