package main

import (
	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/service/metrics"
	"github.com/sandevgo/annals/internal/transport/cli"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:          "shell",
	Short:        "Interactive mode: paste a passage, get its events",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := loadEnv(ctx); err != nil {
			return err
		}

		providerCfg := config.NewProviderConfig(ctx)
		if err := providerCfg.Validate(); err != nil {
			return err
		}

		extractCfg, err := newExtractConfig(ctx, cmd)
		if err != nil {
			return err
		}

		pipeline, err := newPipeline(ctx, providerCfg, extractCfg, metrics.New())
		if err != nil {
			return err
		}

		shell, err := cli.NewReadLine(pipeline, config.GetRuntimePath(), extractCfg.PreviewCount)
		if err != nil {
			return err
		}
		defer func() {
			if err := shell.Shutdown(ctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msg("failed to close shell")
			}
		}()

		return shell.Start(ctx)
	},
}

func init() {
	addChunkFlags(shellCmd)
	rootCmd.AddCommand(shellCmd)
}
