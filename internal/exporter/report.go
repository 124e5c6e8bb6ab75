// Package exporter renders bootstrap results as CSV reports and Excel
// workbooks for downstream consumption.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"

	"bootcli/internal/bootstrap"
)

// Row is one line of a bootstrap report: a statistic's point estimate with
// both interval methods side by side so they can be compared directly.
type Row struct {
	Statistic  string
	Estimate   float64
	StdErr     float64
	Replicates int
	Percentile bootstrap.Interval
	// Analytic is nil when the statistic has no closed-form standard error.
	Analytic *bootstrap.Interval
}

// Report is a complete bootstrap report for one return series.
type Report struct {
	Symbol string
	Rows   []Row
}

// Writer writes reports under a target directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

var csvHeader = []string{
	"statistic", "estimate", "std_err", "replicates",
	"ci_lower", "ci_upper", "ci_level",
	"analytic_lower", "analytic_upper",
}

// WriteCSV writes the report as a CSV file and returns its path. The file is
// truncated if present; a UTF-8 BOM keeps Excel happy with the encoding.
func (w *Writer) WriteCSV(report *Report, filename string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(w.dir, filename)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	records := lo.Map(report.Rows, func(row Row, _ int) []string {
		record := []string{
			row.Statistic,
			formatFloat(row.Estimate),
			formatFloat(row.StdErr),
			strconv.Itoa(row.Replicates),
			formatFloat(row.Percentile.Lower),
			formatFloat(row.Percentile.Upper),
			formatFloat(row.Percentile.Level),
		}
		if row.Analytic != nil {
			record = append(record, formatFloat(row.Analytic.Lower), formatFloat(row.Analytic.Upper))
		} else {
			record = append(record, "", "")
		}
		return record
	})

	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write records: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	w.logger.Info("wrote bootstrap report",
		slog.String("path", path),
		slog.Int("rows", len(report.Rows)),
	)

	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
