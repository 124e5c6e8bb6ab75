// Package services hosts the application services between the HTTP/CLI
// surfaces and the bootstrap engine.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"bootcli/internal/bootstrap"
	"bootcli/internal/config"
	"bootcli/internal/infrastructure"
	"bootcli/internal/statistic"
)

// RunRequest describes one bootstrap run. Zero-valued fields fall back to
// the engine defaults the service was configured with.
type RunRequest struct {
	Sample     []float64
	Statistic  string
	Params     statistic.Params
	Replicates int
	Confidence float64
	Parallel   bool
	Workers    int
	Seed       int64
}

// RunOutcome is the assembled result of a bootstrap run.
type RunOutcome struct {
	RunID      string              `json:"run_id"`
	Statistic  string              `json:"statistic"`
	Replicates int                 `json:"replicates"`
	Parallel   bool                `json:"parallel"`
	Result     *bootstrap.Result   `json:"result"`
	Percentile bootstrap.Interval  `json:"percentile_interval"`
	Analytic   *bootstrap.Interval `json:"analytic_interval,omitempty"`
	Duration   time.Duration       `json:"duration_ns"`
}

// BootstrapService runs bootstrap requests against the engine, applying
// configured defaults and recording metrics and trace spans.
type BootstrapService struct {
	defaults config.EngineConfig
	logger   *slog.Logger
}

// NewBootstrapService creates a bootstrap service with the given defaults.
func NewBootstrapService(defaults config.EngineConfig, logger *slog.Logger) *BootstrapService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapService{
		defaults: defaults,
		logger:   logger.With(slog.String("service", "bootstrap")),
	}
}

// Run executes one bootstrap run.
func (s *BootstrapService) Run(ctx context.Context, req RunRequest) (*RunOutcome, error) {
	return s.run(ctx, req, nil)
}

// RunWithProgress executes one parallel bootstrap run, reporting chunk
// completion through progress. The callback may be invoked from worker
// goroutines.
func (s *BootstrapService) RunWithProgress(ctx context.Context, req RunRequest, progress func(completed, total int)) (*RunOutcome, error) {
	req.Parallel = true
	return s.run(ctx, req, progress)
}

func (s *BootstrapService) run(ctx context.Context, req RunRequest, progress func(completed, total int)) (*RunOutcome, error) {
	req = s.applyDefaults(req)

	if req.Replicates > s.defaults.MaxReplicates {
		return nil, &bootstrap.InputError{
			Reason: fmt.Sprintf("replicate count %d exceeds maximum %d", req.Replicates, s.defaults.MaxReplicates),
		}
	}

	stat, err := statistic.Build(req.Statistic, req.Params)
	if err != nil {
		return nil, &bootstrap.InputError{Reason: err.Error()}
	}

	ctx, span := infrastructure.Tracer().Start(ctx, "bootstrap.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("statistic", req.Statistic),
		attribute.Int("replicates", req.Replicates),
		attribute.Bool("parallel", req.Parallel),
		attribute.Int("sample_size", len(req.Sample)),
	)

	engine := bootstrap.New(bootstrap.Config{Seed: req.Seed, Workers: req.Workers}, s.logger)
	if progress != nil {
		engine.SetProgress(progress)
	}

	mode := "sequential"
	if req.Parallel {
		mode = "parallel"
	}

	start := time.Now()
	var result *bootstrap.Result
	if req.Parallel {
		result, err = engine.ReplicateParallel(ctx, req.Sample, stat, req.Replicates)
	} else {
		result, err = engine.Replicate(ctx, req.Sample, stat, req.Replicates)
	}
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bootstrap run failed")
		observeRun(req.Statistic, mode, outcomeLabel(err), req.Replicates, duration)
		return nil, err
	}
	observeRun(req.Statistic, mode, "success", req.Replicates, duration)

	percentile, err := bootstrap.PercentileInterval(result.Estimates, req.Confidence)
	if err != nil {
		return nil, fmt.Errorf("failed to compute percentile interval: %w", err)
	}

	outcome := &RunOutcome{
		RunID:      uuid.New().String(),
		Statistic:  req.Statistic,
		Replicates: req.Replicates,
		Parallel:   req.Parallel,
		Result:     result,
		Percentile: percentile,
		Duration:   duration,
	}

	if analytic := s.analyticInterval(req, stat); analytic != nil {
		outcome.Analytic = analytic
	}

	s.logger.InfoContext(ctx, "bootstrap run completed",
		slog.String("run_id", outcome.RunID),
		slog.String("statistic", req.Statistic),
		slog.String("mode", mode),
		slog.Int("replicates", req.Replicates),
		slog.Duration("duration", duration),
	)

	return outcome, nil
}

// analyticInterval computes the closed-form normal-approximation interval
// for statistics that have one. Only the mean does today; the point estimate
// and standard error both come from the original sample, independent of the
// bootstrap distribution, so the two methods can be compared.
func (s *BootstrapService) analyticInterval(req RunRequest, stat statistic.Func) *bootstrap.Interval {
	if req.Statistic != "mean" {
		return nil
	}

	estimate, err := stat(req.Sample)
	if err != nil {
		return nil
	}

	iv, err := bootstrap.AnalyticInterval(estimate, statistic.MeanStdErr(req.Sample), req.Confidence)
	if err != nil {
		return nil
	}
	return &iv
}

func (s *BootstrapService) applyDefaults(req RunRequest) RunRequest {
	if req.Replicates == 0 {
		req.Replicates = s.defaults.Replicates
	}
	if req.Confidence == 0 {
		req.Confidence = s.defaults.Confidence
	}
	if req.Workers == 0 {
		req.Workers = s.defaults.Workers
	}
	if req.Seed == 0 {
		req.Seed = s.defaults.Seed
	}
	return req
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case *bootstrap.StatisticError:
		return "statistic_failure"
	case *bootstrap.WorkerError:
		return "worker_failure"
	case *bootstrap.InputError:
		return "invalid_input"
	default:
		return "error"
	}
}
