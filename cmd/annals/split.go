package main

import (
	"fmt"

	"github.com/sandevgo/annals/internal/providers/tokenizer"
	"github.com/sandevgo/annals/internal/service/segment"
	"github.com/sandevgo/annals/internal/service/ui"
	"github.com/sandevgo/annals/internal/storage/file"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/spf13/cobra"
)

const headTokens = 16

var splitCmd = &cobra.Command{
	Use:          "split <input>",
	Short:        "Show how a text would be chunked, without calling the model",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := loadEnv(ctx); err != nil {
			return err
		}

		cfg, err := newExtractConfig(ctx, cmd)
		if err != nil {
			return err
		}

		text, err := file.NewSource().Load(ctx, args[0])
		if err != nil {
			return err
		}

		counter, err := tokenizer.Default()
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("token estimates unavailable")
		}

		chunks := segment.Split(text, cfg.GetChunkSize(), cfg.GetChunkOverlap())
		rows := make([]ui.ChunkRow, 0, len(chunks))
		for _, c := range chunks {
			row := ui.ChunkRow{
				Position: c.Position(),
				Start:    c.Start,
				End:      c.End,
				Tokens:   -1,
				Head:     headRunes(c.Text, headTokens*2),
			}
			if counter != nil {
				row.Tokens = counter.CountTokens(c.Text)
				row.Head = counter.Head(c.Text, headTokens)
			}
			rows = append(rows, row)
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.RenderChunks(rows))
		return nil
	},
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func init() {
	addChunkFlags(splitCmd)
	rootCmd.AddCommand(splitCmd)
}
