package extractor

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/internal/service/parser"
	"github.com/sandevgo/annals/internal/service/prompt"
	"github.com/sandevgo/annals/internal/service/segment"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/sandevgo/annals/pkg/retry"
)

// Recorder receives run statistics. internal/service/metrics implements it.
type Recorder interface {
	ObserveChunk(ok bool, candidates int)
	ObserveRun(unique, issues int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveChunk(bool, int)             {}
func (nopRecorder) ObserveRun(int, int, time.Duration) {}

type Stats struct {
	Chunks     int
	Failed     int
	Candidates int
	Unique     int
	WithIssues int
	Elapsed    time.Duration
}

type Result struct {
	RunID   string
	Records []core.EventRecord
	Stats   Stats
}

// Pipeline drives segmentation, completion, parsing and deduplication of one text.
type Pipeline struct {
	completer core.Completer
	chunkSize int
	overlap   int
	delay     time.Duration
	workers   int

	sleep       retry.SleepFunc
	tokens      core.TokenCounter
	tokenBudget int
	recorder    Recorder
}

type Option func(*Pipeline)

// WithSleep replaces the wall-clock wait between chunk submissions.
func WithSleep(fn retry.SleepFunc) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithTokenCounter enables per-chunk token estimates. With a positive budget a
// warning is logged for chunks whose estimate exceeds it.
func WithTokenCounter(counter core.TokenCounter, budget int) Option {
	return func(p *Pipeline) {
		p.tokens = counter
		p.tokenBudget = budget
	}
}

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

func NewPipeline(completer core.Completer, cfg *config.ExtractConfig, opts ...Option) *Pipeline {
	p := &Pipeline{
		completer: completer,
		chunkSize: cfg.GetChunkSize(),
		overlap:   cfg.GetChunkOverlap(),
		delay:     cfg.GetChunkDelay(),
		workers:   cfg.GetWorkers(),
		sleep:     retry.Sleep,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type chunkOutcome struct {
	records []core.EventRecord
	failed  bool
}

// Process extracts records from text. A failing chunk contributes nothing and
// never aborts the run. The only error is cancellation, returned together with
// the records gathered so far.
func (p *Pipeline) Process(ctx context.Context, text string) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = log.WithFields(ctx, "run", runID)
	logger := log.FromCtx(ctx)

	chunks := segment.Split(text, p.chunkSize, p.overlap)
	logger.Info().
		Int("chars", utf8.RuneCountInString(text)).
		Int("chunks", len(chunks)).
		Int("workers", p.workers).
		Msg("text segmented")

	outcomes := make([]chunkOutcome, len(chunks))

	var runErr error
	if p.workers > 1 && len(chunks) > 1 {
		runErr = p.runPooled(ctx, chunks, outcomes)
	} else {
		runErr = p.runSequential(ctx, chunks, outcomes)
	}

	stats := Stats{Chunks: len(chunks)}
	var candidates []core.EventRecord
	for _, o := range outcomes {
		if o.failed {
			stats.Failed++
		}
		candidates = append(candidates, o.records...)
	}
	stats.Candidates = len(candidates)

	records := Dedup(candidates)
	stats.Unique = len(records)
	for _, r := range records {
		if issues := r.Issues(); len(issues) > 0 {
			stats.WithIssues++
			logger.Debug().
				Str("date", r.String("date")).
				Str("event", r.String("event")).
				Strs("issues", issues).
				Msg("record deviates from schema")
		}
	}
	stats.Elapsed = time.Since(started)

	p.recorder.ObserveRun(stats.Unique, stats.WithIssues, stats.Elapsed)

	logger.Info().
		Int("chunks", stats.Chunks).
		Int("failed", stats.Failed).
		Int("candidates", stats.Candidates).
		Int("unique", stats.Unique).
		Dur("elapsed", stats.Elapsed).
		Msg("extraction finished")

	return &Result{RunID: runID, Records: records, Stats: stats}, runErr
}

func (p *Pipeline) runSequential(ctx context.Context, chunks []core.Chunk, outcomes []chunkOutcome) error {
	for i, chunk := range chunks {
		if i > 0 {
			if err := p.sleep(ctx, p.delay); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		outcomes[i] = p.processChunk(ctx, chunk)
	}
	return ctx.Err()
}

// runPooled keeps the submission pacing of the sequential run; each worker writes
// only its own outcome slot.
func (p *Pipeline) runPooled(ctx context.Context, chunks []core.Chunk, outcomes []chunkOutcome) error {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		submitErr error
	)
	for i, chunk := range chunks {
		if i > 0 {
			if err := p.sleep(ctx, p.delay); err != nil {
				submitErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.processChunk(ctx, chunk)
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit chunk %s: %w", chunk.Position(), err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return submitErr
	}
	return ctx.Err()
}

func (p *Pipeline) processChunk(ctx context.Context, chunk core.Chunk) chunkOutcome {
	logger := log.FromCtx(ctx).With().Str("chunk", chunk.Position()).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Int("runes", chunk.End-chunk.Start).Msg("processing chunk")
	logger.Debug().Int("start", chunk.Start).Int("end", chunk.End).Msg("chunk span")
	if p.tokens != nil {
		estimate := p.tokens.CountTokens(chunk.Text)
		logger.Debug().Int("tokens", estimate).Msg("chunk token estimate")
		if p.tokenBudget > 0 && estimate > p.tokenBudget {
			logger.Warn().
				Int("tokens", estimate).
				Int("budget", p.tokenBudget).
				Msg("chunk exceeds token budget, reply may be truncated")
		}
	}

	raw, err := p.completer.Complete(ctx, prompt.Messages(chunk))
	if err != nil {
		logger.Error().Err(err).Msg("chunk failed, no events extracted")
		p.recorder.ObserveChunk(false, 0)
		return chunkOutcome{failed: true}
	}

	records := parser.Parse(ctx, raw)
	logger.Info().Int("events", len(records)).Msg("chunk processed")
	p.recorder.ObserveChunk(true, len(records))

	return chunkOutcome{records: records}
}
