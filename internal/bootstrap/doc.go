// Package bootstrap implements the resampling engine at the heart of bootcli.
//
// The engine estimates the sampling distribution of an arbitrary scalar
// statistic by drawing B resamples (with replacement) from a fixed sample,
// evaluating the statistic on each, and summarizing the resulting empirical
// distribution into a point estimate, a standard error, and confidence
// intervals.
//
// # Core Components
//
//   - resample.go: single-resample evaluation against a caller-owned RNG
//   - engine.go: sequential and parallel replication over B resamples
//   - partition.go: balanced splitting of B across independent workers
//   - summary.go: mean and standard error of the replicate distribution
//   - interval.go: percentile and normal-approximation confidence intervals
//   - errors.go: the input/statistic/worker failure taxonomy
//
// # Usage Example
//
//	engine := bootstrap.New(bootstrap.Config{Seed: 42}, slog.Default())
//	result, err := engine.ReplicateParallel(ctx, returns, statistic.Sharpe(0, 252), 10000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ci, _ := bootstrap.PercentileInterval(result.Estimates, 0.95)
//
// The engine is agnostic to what the statistic computes. Statistics must be
// pure: they receive every value they need through their input slice and are
// invoked concurrently from independent workers during parallel runs.
package bootstrap
