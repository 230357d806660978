package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
)

// ExtractConfig controls segmentation, pacing and output of an extraction run.
type ExtractConfig struct {
	ChunkSize    int           `env:"ANNALS_CHUNK_SIZE" envDefault:"2000"`
	ChunkOverlap int           `env:"ANNALS_CHUNK_OVERLAP" envDefault:"200"`
	ChunkDelay   time.Duration `env:"ANNALS_CHUNK_DELAY" envDefault:"1s"`
	Workers      int           `env:"ANNALS_WORKERS" envDefault:"1"`

	OutputPath   string `env:"ANNALS_OUTPUT" envDefault:"events_output.json"`
	PreviewCount int    `env:"ANNALS_PREVIEW" envDefault:"2"`
	MetricsPath  string `env:"ANNALS_METRICS_FILE"`
}

func ParseExtractConfig() (*ExtractConfig, error) {
	c := &ExtractConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewExtractConfig(ctx context.Context) *ExtractConfig {
	c, err := ParseExtractConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Extract config")
	}
	return c
}

func (c ExtractConfig) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: %d", core.ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d, size %d", core.ErrInvalidOverlap, c.ChunkOverlap, c.ChunkSize)
	}
	if c.ChunkDelay < 0 {
		return fmt.Errorf("chunk delay must not be negative: %s", c.ChunkDelay)
	}
	return nil
}

func (c ExtractConfig) GetChunkSize() int {
	return c.ChunkSize
}

func (c ExtractConfig) GetChunkOverlap() int {
	return c.ChunkOverlap
}

func (c ExtractConfig) GetChunkDelay() time.Duration {
	return c.ChunkDelay
}

func (c ExtractConfig) GetWorkers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}
