package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bootcli/internal/bootstrap"
)

const (
	summarySheet   = "Summary"
	estimatesSheet = "Estimates"
)

// WriteWorkbook writes the report as an Excel workbook with a summary sheet
// and, when estimate collections are supplied, one column of replicate
// estimates per statistic on a second sheet. Returns the workbook path.
func (w *Writer) WriteWorkbook(report *Report, estimates map[string]*bootstrap.Result, filename string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, report); err != nil {
		return "", err
	}
	if len(estimates) > 0 {
		if err := w.writeEstimatesSheet(f, report, estimates); err != nil {
			return "", err
		}
	}

	// excelize creates "Sheet1" by default; drop it once real sheets exist.
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return "", fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	path := filepath.Join(w.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("wrote bootstrap workbook",
		slog.String("path", path),
		slog.Int("rows", len(report.Rows)),
	)

	return path, nil
}

func (w *Writer) writeSummarySheet(f *excelize.File, report *Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]interface{}{"Symbol", report.Symbol}); err != nil {
		return fmt.Errorf("failed to write symbol row: %w", err)
	}

	header := []interface{}{
		"Statistic", "Estimate", "StdErr", "Replicates",
		"CI Lower", "CI Upper", "CI Level", "Analytic Lower", "Analytic Upper",
	}
	if err := f.SetSheetRow(summarySheet, "A3", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range report.Rows {
		cells := []interface{}{
			row.Statistic, row.Estimate, row.StdErr, row.Replicates,
			row.Percentile.Lower, row.Percentile.Upper, row.Percentile.Level,
		}
		if row.Analytic != nil {
			cells = append(cells, row.Analytic.Lower, row.Analytic.Upper)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return nil
}

func (w *Writer) writeEstimatesSheet(f *excelize.File, report *Report, estimates map[string]*bootstrap.Result) error {
	if _, err := f.NewSheet(estimatesSheet); err != nil {
		return fmt.Errorf("failed to create estimates sheet: %w", err)
	}

	col := 1
	for _, row := range report.Rows {
		result, ok := estimates[row.Statistic]
		if !ok {
			continue
		}

		head, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(estimatesSheet, head, row.Statistic); err != nil {
			return fmt.Errorf("failed to write estimates header: %w", err)
		}

		for i, est := range result.Estimates {
			cell, err := excelize.CoordinatesToCellName(col, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(estimatesSheet, cell, est); err != nil {
				return fmt.Errorf("failed to write estimate: %w", err)
			}
		}
		col++
	}

	return nil
}
