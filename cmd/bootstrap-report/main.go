package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"bootcli/internal/bootstrap"
	"bootcli/internal/config"
	"bootcli/internal/dataprocessing"
	"bootcli/internal/exporter"
	"bootcli/internal/services"
	"bootcli/internal/statistic"
)

func main() {
	input := flag.String("input", "", "path to the returns CSV (required)")
	symbol := flag.String("symbol", "", "instrument symbol for the report header")
	stats := flag.String("statistics", "mean,stddev,sharpe,var,es", "comma-separated statistics to bootstrap")
	replicates := flag.Int("replicates", 0, "bootstrap replicates (defaults to configured engine value)")
	confidence := flag.Float64("confidence", 0, "confidence level in (0,1) (defaults to configured engine value)")
	seed := flag.Int64("seed", 0, "master seed, 0 draws a random seed")
	workers := flag.Int("workers", 0, "worker count for parallel runs, 0 picks automatically")
	sequential := flag.Bool("sequential", false, "run replicates on a single goroutine")
	alpha := flag.Float64("alpha", 0, "tail probability for var and es (default 0.05)")
	riskFree := flag.Float64("risk-free", 0, "per-period risk-free rate for sharpe")
	outputDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: bootstrap-report -input returns.csv [-symbol SYM] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.Default()

	if *outputDir == "" {
		paths, err := config.ResolvePaths(cfg.Paths)
		if err != nil {
			slog.Error("Failed to resolve paths", slog.String("error", err.Error()))
			os.Exit(1)
		}
		*outputDir = paths.ReportsDir
	}

	series, err := dataprocessing.LoadReturns(*input, *symbol, logger)
	if err != nil {
		slog.Error("Failed to load returns", slog.String("path", *input), slog.String("error", err.Error()))
		os.Exit(1)
	}
	summary := series.Summarize()
	slog.Info("Loaded return series",
		slog.String("symbol", series.Symbol),
		slog.Int("observations", summary.Observations),
		slog.Int("skipped_rows", series.SkippedRows),
	)

	svc := services.NewBootstrapService(cfg.Engine, logger)
	ctx := context.Background()

	report := &exporter.Report{Symbol: series.Symbol}
	estimates := make(map[string]*bootstrap.Result)

	for _, name := range strings.Split(*stats, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		outcome, err := svc.Run(ctx, services.RunRequest{
			Sample:     series.Returns,
			Statistic:  name,
			Params:     statistic.Params{Alpha: *alpha, RiskFree: *riskFree},
			Replicates: *replicates,
			Confidence: *confidence,
			Parallel:   !*sequential,
			Workers:    *workers,
			Seed:       *seed,
		})
		if err != nil {
			slog.Error("Bootstrap run failed",
				slog.String("statistic", name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		report.Rows = append(report.Rows, exporter.Row{
			Statistic:  name,
			Estimate:   outcome.Result.Mean,
			StdErr:     outcome.Result.StdErr,
			Replicates: outcome.Replicates,
			Percentile: outcome.Percentile,
			Analytic:   outcome.Analytic,
		})
		estimates[name] = outcome.Result

		slog.Info("Bootstrap run completed",
			slog.String("statistic", name),
			slog.Float64("estimate", outcome.Result.Mean),
			slog.Float64("std_err", outcome.Result.StdErr),
			slog.Duration("duration", outcome.Duration),
		)
	}

	if len(report.Rows) == 0 {
		slog.Error("No statistics requested")
		os.Exit(1)
	}

	printSummary(report)

	writer := exporter.NewWriter(*outputDir, logger)
	stamp := time.Now().Format("2006-01-02")
	base := fmt.Sprintf("bootstrap_%s_%s", strings.ToLower(series.Symbol), stamp)

	csvPath, err := writer.WriteCSV(report, base+".csv")
	if err != nil {
		slog.Error("Failed to write CSV report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	xlsxPath, err := writer.WriteWorkbook(report, estimates, base+".xlsx")
	if err != nil {
		slog.Error("Failed to write workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Report complete",
		slog.String("csv", csvPath),
		slog.String("workbook", xlsxPath),
	)
}

func printSummary(report *exporter.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "STATISTIC\tESTIMATE\tSTD ERR\tCI LOWER\tCI UPPER\tLEVEL\n")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.0f%%\n",
			row.Statistic, row.Estimate, row.StdErr,
			row.Percentile.Lower, row.Percentile.Upper, row.Percentile.Level*100)
	}
	w.Flush()
}
