package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/annals/internal/service/extractor"
	"github.com/sandevgo/annals/internal/service/ui"
	"github.com/sandevgo/annals/pkg/log"
)

const (
	promptFirst = ">>> "
	promptMore  = "... "
	historyFile = "shell_history"

	// endOfPassage on a line of its own submits the passage.
	endOfPassage = "."
)

// Extractor runs the extraction pipeline over one passage.
type Extractor interface {
	Process(ctx context.Context, text string) (*extractor.Result, error)
}

// ReadLine is an interactive shell: paste a passage, finish it with a line
// holding a single ".", get the extracted events back. Blank lines inside the
// passage are kept as paragraph breaks.
type ReadLine struct {
	pipeline Extractor
	preview  int
	rl       *readline.Instance
}

func NewReadLine(pipeline Extractor, runtimePath string, preview int) (*ReadLine, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptFirst,
		HistoryFile:     filepath.Join(runtimePath, historyFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		pipeline: pipeline,
		preview:  preview,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("Annals shell started. Paste a passage and finish it with a line containing only '.'. Blank lines are kept as paragraph breaks. Type 'exit' to quit.")

	var buf passage
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 && buf.empty() {
					return nil
				}
				buf.reset()
				r.rl.SetPrompt(promptFirst)
				continue
			}
			if errors.Is(err, io.EOF) {
				if text, ok := buf.flush(); ok {
					r.handle(ctx, r.rl.Stdout(), text)
				}
				return nil
			}
			return err
		}

		text, action := buf.feed(line)
		switch action {
		case actionQuit:
			return nil
		case actionRun:
			r.handle(ctx, r.rl.Stdout(), text)
			r.rl.SetPrompt(promptFirst)
		case actionMore:
			r.rl.SetPrompt(promptMore)
		}
	}
}

// handle extracts events from one passage and prints them. Errors are shown and
// the shell keeps running.
func (r *ReadLine) handle(ctx context.Context, w io.Writer, text string) {
	logger := log.FromCtx(ctx)

	result, err := r.pipeline.Process(ctx, text)
	if err != nil {
		logger.Error().Err(err).Msg("extraction failed")
		fmt.Fprintf(w, "Error: %v\n", err)
		if result == nil {
			return
		}
	}

	fmt.Fprint(w, ui.RenderStats(result.Stats, ""))

	n := r.preview
	if n <= 0 {
		n = len(result.Records)
	}
	out, err := ui.RenderRecords(result.Records, n)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprint(w, out)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

type action int

const (
	actionNone action = iota
	actionMore
	actionRun
	actionQuit
)

// passage collects pasted lines until the end-of-passage line closes it.
type passage struct {
	lines []string
}

func (p *passage) feed(line string) (string, action) {
	trimmed := strings.TrimSpace(line)

	if p.empty() {
		switch trimmed {
		case "", endOfPassage:
			return "", actionNone
		case "exit", "quit":
			return "", actionQuit
		}
	}

	if trimmed == endOfPassage {
		text, _ := p.flush()
		return text, actionRun
	}

	p.lines = append(p.lines, line)
	return "", actionMore
}

func (p *passage) flush() (string, bool) {
	text := strings.TrimRight(strings.Join(p.lines, "\n"), "\n\t ")
	p.reset()
	return text, text != ""
}

func (p *passage) empty() bool { return len(p.lines) == 0 }

func (p *passage) reset() { p.lines = p.lines[:0] }
