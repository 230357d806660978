package retry

import (
	"context"
	"time"
)

type Operation = func() error

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// NotifyFunc is called once for every failed attempt. Attempts are 1-indexed.
type NotifyFunc func(attempt int, err error)

type Config struct {
	MaxAttempts int
	// Delay is multiplied by the attempt number: Delay*1, Delay*2, ...
	Delay    time.Duration
	MaxDelay time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		MaxDelay:    time.Minute,
	}
}

type Retrier struct {
	config *Config
	sleep  SleepFunc
	notify NotifyFunc
}

type Option func(*Retrier)

func WithSleep(fn SleepFunc) Option {
	return func(r *Retrier) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

func WithNotify(fn NotifyFunc) Option {
	return func(r *Retrier) {
		r.notify = fn
	}
}

func NewRetrier(config *Config, opts ...Option) *Retrier {
	r := &Retrier{
		config: config,
		sleep:  Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewDefaultRetrier(opts ...Option) *Retrier {
	return NewRetrier(NewDefaultConfig(), opts...)
}

func (r *Retrier) MaxAttempts() int {
	if r.config.MaxAttempts < 1 {
		return 1
	}
	return r.config.MaxAttempts
}

// Backoff returns the wait after the given failed attempt.
func (r *Retrier) Backoff(attempt int) time.Duration {
	d := r.config.Delay * time.Duration(attempt)
	if r.config.MaxDelay > 0 && d > r.config.MaxDelay {
		d = r.config.MaxDelay
	}
	return d
}

// Do runs op until it succeeds or MaxAttempts is reached. There is no wait after
// the final attempt; the last error is returned.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	attempts := r.MaxAttempts()

	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		if r.notify != nil {
			r.notify(attempt, err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == attempts {
			break
		}

		if sleepErr := r.sleep(ctx, r.Backoff(attempt)); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}

// Sleep is the wall-clock SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoSleep skips every wait. Intended for tests and dry runs.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
