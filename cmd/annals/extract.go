package main

import (
	"fmt"

	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/service/metrics"
	"github.com/sandevgo/annals/internal/service/ui"
	"github.com/sandevgo/annals/internal/storage/file"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:          "extract <input>",
	Short:        "Extract historical events from a text file into JSON",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

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

		text, err := file.NewSource().Load(ctx, args[0])
		if err != nil {
			return err
		}

		m := metrics.New()
		pipeline, err := newPipeline(ctx, providerCfg, extractCfg, m)
		if err != nil {
			return err
		}

		result, runErr := pipeline.Process(ctx, text)
		if runErr != nil {
			logger.Warn().Err(runErr).Msg("extraction interrupted, keeping partial result")
		}

		if extractCfg.MetricsPath != "" {
			if err := m.WriteToTextfile(extractCfg.MetricsPath); err != nil {
				logger.Error().Err(err).Str("path", extractCfg.MetricsPath).Msg("failed to write metrics")
			}
		}

		out := cmd.OutOrStdout()
		if len(result.Records) == 0 {
			fmt.Fprint(out, ui.RenderStats(result.Stats, ""))
			return runErr
		}

		if err := file.NewSink().Save(ctx, extractCfg.OutputPath, result.Records); err != nil {
			return err
		}

		fmt.Fprint(out, ui.RenderStats(result.Stats, extractCfg.OutputPath))
		preview, err := ui.RenderRecords(result.Records, extractCfg.PreviewCount)
		if err != nil {
			return err
		}
		fmt.Fprint(out, preview)

		return runErr
	},
}

func init() {
	addChunkFlags(extractCmd)
	extractCmd.Flags().StringP("output", "o", "", "output JSON file (default from ANNALS_OUTPUT or events_output.json)")
	extractCmd.Flags().Int("workers", 0, "concurrent chunk requests (default from ANNALS_WORKERS or 1)")
	extractCmd.Flags().String("metrics-file", "", "write run metrics in node-exporter textfile format")
	rootCmd.AddCommand(extractCmd)
}
