package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/providers/llm"
	"github.com/sandevgo/annals/internal/providers/tokenizer"
	"github.com/sandevgo/annals/internal/service/extractor"
	"github.com/sandevgo/annals/internal/service/metrics"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/spf13/cobra"
)

// loadEnv loads --env-file first, then the runtime .env. godotenv never
// overrides variables that are already set, so the real environment wins.
func loadEnv(ctx context.Context) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		log.FromCtx(ctx).Debug().Str("path", envFile).Msg("loaded .env file")
	}
	return initEnv(ctx, config.GetEnvFilePath())
}

func initEnv(ctx context.Context, envPath string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envPath); err != nil {
		logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envPath).Msg("loaded .env file")
	return nil
}

func addChunkFlags(cmd *cobra.Command) {
	cmd.Flags().Int("chunk-size", 0, "chunk size in characters (default from ANNALS_CHUNK_SIZE or 2000)")
	cmd.Flags().Int("overlap", 0, "overlap between chunks in characters (default from ANNALS_CHUNK_OVERLAP or 200)")
}

// newExtractConfig parses the environment and applies explicitly set flags on top.
func newExtractConfig(ctx context.Context, cmd *cobra.Command) (*config.ExtractConfig, error) {
	cfg := config.NewExtractConfig(ctx)
	flags := cmd.Flags()

	if flags.Changed("chunk-size") {
		cfg.ChunkSize, _ = flags.GetInt("chunk-size")
	}
	if flags.Changed("overlap") {
		cfg.ChunkOverlap, _ = flags.GetInt("overlap")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.OutputPath, _ = flags.GetString("output")
	}
	if flags.Lookup("metrics-file") != nil && flags.Changed("metrics-file") {
		cfg.MetricsPath, _ = flags.GetString("metrics-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newPipeline(ctx context.Context, providerCfg *config.ProviderConfig, extractCfg *config.ExtractConfig, m *metrics.Metrics) (*extractor.Pipeline, error) {
	completer, err := llm.NewProvider(ctx, providerCfg, llm.WithFailureHook(m.ObserveFailedAttempt))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	opts := []extractor.Option{extractor.WithRecorder(m)}
	if counter, err := tokenizer.Default(); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("token estimates disabled")
	} else {
		opts = append(opts, extractor.WithTokenCounter(counter, providerCfg.MaxTokens))
	}

	return extractor.NewPipeline(completer, extractCfg, opts...), nil
}
