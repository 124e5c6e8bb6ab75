// Package dataprocessing loads return series from CSV files into the ordered
// samples the bootstrap engine consumes.
package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MinObservations is the smallest series worth bootstrapping; below this the
// loader rejects the file outright.
const MinObservations = 2

// ReturnSeries is an ordered, validated sample of per-period returns plus
// the metadata needed for report headers.
type ReturnSeries struct {
	Symbol    string
	Returns   []float64
	FirstDate time.Time
	LastDate  time.Time
	// SkippedRows counts malformed or non-finite rows dropped during
	// loading.
	SkippedRows int
}

// Summary holds descriptive statistics of a loaded series.
type Summary struct {
	Observations int
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
}

// Summarize computes descriptive statistics over the series.
func (s *ReturnSeries) Summarize() Summary {
	if len(s.Returns) == 0 {
		return Summary{}
	}

	min, max := s.Returns[0], s.Returns[0]
	for _, r := range s.Returns {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}

	mean, sd := stat.MeanStdDev(s.Returns, nil)
	return Summary{
		Observations: len(s.Returns),
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
	}
}

// LoadReturns reads a CSV return series for the given symbol. Two layouts
// are accepted, detected from the header row:
//
//	date,close   - per-period simple returns are derived from closes
//	date,return  - returns are taken as-is
//
// Dates must be ISO (2006-01-02) and ascending. Malformed rows are skipped
// with a warning; a file yielding fewer than MinObservations returns fails.
func LoadReturns(path, symbol string, logger *slog.Logger) (*ReturnSeries, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open returns file: %w", err)
	}
	defer file.Close()

	series, err := parseReturns(file, symbol, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	logger.Info("loaded return series",
		slog.String("path", path),
		slog.String("symbol", series.Symbol),
		slog.Int("observations", len(series.Returns)),
		slog.Int("skipped_rows", series.SkippedRows),
	)

	return series, nil
}

func parseReturns(r io.Reader, symbol string, logger *slog.Logger) (*ReturnSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	dateCol, valueCol, isClose, err := detectColumns(header)
	if err != nil {
		return nil, err
	}

	series := &ReturnSeries{Symbol: symbol}
	var prevClose float64
	var havePrev bool
	var prevDate time.Time
	row := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			series.SkippedRows++
			logger.Warn("skipping malformed row", slog.Int("row", row), slog.String("error", err.Error()))
			continue
		}
		if len(record) <= dateCol || len(record) <= valueCol {
			series.SkippedRows++
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[dateCol]))
		if err != nil {
			series.SkippedRows++
			logger.Warn("skipping row with bad date", slog.Int("row", row), slog.String("value", record[dateCol]))
			continue
		}
		if !prevDate.IsZero() && !date.After(prevDate) {
			return nil, fmt.Errorf("dates must be strictly ascending: row %d has %s after %s",
				row, date.Format("2006-01-02"), prevDate.Format("2006-01-02"))
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueCol]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			series.SkippedRows++
			logger.Warn("skipping row with bad value", slog.Int("row", row), slog.String("value", record[valueCol]))
			continue
		}

		if isClose {
			if value <= 0 {
				series.SkippedRows++
				logger.Warn("skipping row with non-positive close", slog.Int("row", row))
				continue
			}
			if havePrev {
				series.Returns = append(series.Returns, (value-prevClose)/prevClose)
				series.LastDate = date
			} else {
				series.FirstDate = date
			}
			prevClose = value
			havePrev = true
		} else {
			if series.FirstDate.IsZero() {
				series.FirstDate = date
			}
			series.Returns = append(series.Returns, value)
			series.LastDate = date
		}
		prevDate = date
	}

	if len(series.Returns) < MinObservations {
		return nil, fmt.Errorf("insufficient observations: got %d, need at least %d",
			len(series.Returns), MinObservations)
	}

	return series, nil
}

// detectColumns resolves the date and value columns from the header row and
// reports whether values are closes (true) or returns (false).
func detectColumns(header []string) (dateCol, valueCol int, isClose bool, err error) {
	dateCol, valueCol = -1, -1

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			dateCol = i
		case "close", "price":
			valueCol = i
			isClose = true
		case "return", "returns":
			valueCol = i
			isClose = false
		}
	}

	if dateCol == -1 || valueCol == -1 {
		return 0, 0, false, fmt.Errorf("header must contain date plus close or return columns, got %v", header)
	}
	return dateCol, valueCol, isClose, nil
}
