package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config holds engine tuning knobs. The zero value is usable: a time-derived
// seed and one worker per available CPU minus one.
type Config struct {
	// Seed is the master seed for all randomness consumed by a run.
	// Zero selects a time-derived seed, making runs non-reproducible.
	Seed int64
	// Workers hints how many parallel workers ReplicateParallel launches.
	// Zero selects runtime.NumCPU()-1 (minimum 1), leaving one unit of
	// capacity free for the coordinating process.
	Workers int
}

// Engine drives bootstrap replication. It is safe for concurrent use; each
// run owns its randomness and scratch buffers.
type Engine struct {
	seed     int64
	workers  int
	logger   *slog.Logger
	progress func(completed, total int)
}

// New creates an engine with the given configuration.
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		seed:    cfg.Seed,
		workers: cfg.Workers,
		logger:  logger,
	}
}

// SetProgress installs a callback invoked after each completed parallel chunk
// with the cumulative number of finished replicates. The callback runs on
// worker goroutines and must be safe for concurrent use.
func (e *Engine) SetProgress(fn func(completed, total int)) {
	e.progress = fn
}

// Replicate runs the sequential bootstrap: B resamples drawn on a single
// execution path from one seeded RNG, estimates returned in invocation order.
// Two runs with the same seed, sample, and statistic yield identical results.
func (e *Engine) Replicate(ctx context.Context, sample []float64, stat Statistic, b int) (*Result, error) {
	if err := validateRun(sample, stat, b); err != nil {
		return nil, err
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(e.masterSeed()))
	estimates := make([]float64, b)
	buf := make([]float64, len(sample))

	for i := 0; i < b; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("bootstrap aborted after %d replicates: %w", i, ctx.Err())
		default:
		}

		est, err := Resample(rng, sample, buf, stat)
		if err != nil {
			return nil, &StatisticError{Replicate: i, Err: err}
		}
		estimates[i] = est
	}

	result := Summarize(estimates)
	e.logger.InfoContext(ctx, "sequential bootstrap completed",
		slog.Int("replicates", b),
		slog.Int("sample_size", len(sample)),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// ReplicateParallel runs the bootstrap across independent workers. B is split
// into balanced chunks, each worker replicates its chunk with an
// independently seeded RNG, and the per-worker estimates are concatenated in
// worker order into one flat collection of length exactly B.
//
// On any failure the whole run fails: a statistic error surfaces as
// StatisticError, an abnormal worker termination (including a recovered
// panic) as WorkerError, and no partial result is returned. All workers are
// joined before ReplicateParallel returns, on every exit path.
func (e *Engine) ReplicateParallel(ctx context.Context, sample []float64, stat Statistic, b int) (*Result, error) {
	if err := validateRun(sample, stat, b); err != nil {
		return nil, err
	}
	if e.workers < 0 {
		return nil, errInput("worker count must be >= 1, got %d", e.workers)
	}

	workers := e.workerCount(b)
	chunks := Partition(b, workers)

	// Per-worker seeds drawn up front from the master RNG so that replicate
	// streams stay statistically independent without any shared generator.
	master := rand.New(rand.NewSource(e.masterSeed()))
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	start := time.Now()
	results := make([][]float64, workers)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = &WorkerError{Worker: w, Err: fmt.Errorf("panic: %v", rec)}
				}
			}()

			rng := rand.New(rand.NewSource(seeds[w]))
			buf := make([]float64, len(sample))
			chunk := make([]float64, chunks[w])

			for i := range chunk {
				select {
				case <-gctx.Done():
					return &WorkerError{Worker: w, Err: gctx.Err()}
				default:
				}

				est, rerr := Resample(rng, sample, buf, stat)
				if rerr != nil {
					return &StatisticError{Replicate: i, Err: rerr}
				}
				chunk[i] = est
			}

			results[w] = chunk
			if e.progress != nil {
				e.progress(int(completed.Add(int64(len(chunk)))), b)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.WarnContext(ctx, "parallel bootstrap failed",
			slog.Int("workers", workers),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	estimates := make([]float64, 0, b)
	for _, chunk := range results {
		estimates = append(estimates, chunk...)
	}

	result := Summarize(estimates)
	e.logger.InfoContext(ctx, "parallel bootstrap completed",
		slog.Int("replicates", b),
		slog.Int("workers", workers),
		slog.Int("sample_size", len(sample)),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// workerCount resolves the configured worker hint against B. A chunk is never
// empty: the count is capped at B so Partition always yields positive sizes.
func (e *Engine) workerCount(b int) int {
	workers := e.workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}
	if workers > b {
		workers = b
	}
	return workers
}

func (e *Engine) masterSeed() int64 {
	if e.seed != 0 {
		return e.seed
	}
	return time.Now().UnixNano()
}

func validateRun(sample []float64, stat Statistic, b int) error {
	if len(sample) == 0 {
		return errInput("sample must not be empty")
	}
	if stat == nil {
		return errInput("statistic must not be nil")
	}
	if b < 1 {
		return errInput("replicate count must be >= 1, got %d", b)
	}
	return nil
}
