package exporter

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bootcli/internal/bootstrap"
)

func sampleReport() *Report {
	analytic := bootstrap.Interval{Lower: 0.9, Upper: 1.5, Level: 0.95}
	return &Report{
		Symbol: "TEST",
		Rows: []Row{
			{
				Statistic:  "mean",
				Estimate:   1.2,
				StdErr:     0.15,
				Replicates: 1000,
				Percentile: bootstrap.Interval{Lower: 0.91, Upper: 1.49, Level: 0.95},
				Analytic:   &analytic,
			},
			{
				Statistic:  "var",
				Estimate:   0.03,
				StdErr:     0.01,
				Replicates: 1000,
				Percentile: bootstrap.Interval{Lower: 0.01, Upper: 0.05, Level: 0.95},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	path, err := writer.WriteCSV(sampleReport(), "report.csv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "mean", records[1][0])
	assert.Equal(t, "1000", records[1][3])
	assert.NotEmpty(t, records[1][7], "analytic bounds present for mean")
	assert.Empty(t, records[2][7], "no analytic bounds for var")
}

func TestWriteCSVCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"
	writer := NewWriter(dir, nil)

	path, err := writer.WriteCSV(sampleReport(), "report.csv")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	estimates := map[string]*bootstrap.Result{
		"mean": {Mean: 1.2, StdErr: 0.15, Estimates: []float64{1.1, 1.2, 1.3}},
	}

	path, err := writer.WriteWorkbook(sampleReport(), estimates, "report.xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	symbol, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "TEST", symbol)

	statName, err := f.GetCellValue("Summary", "A4")
	require.NoError(t, err)
	assert.Equal(t, "mean", statName)

	estHeader, err := f.GetCellValue("Estimates", "A1")
	require.NoError(t, err)
	assert.Equal(t, "mean", estHeader)

	firstEstimate, err := f.GetCellValue("Estimates", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1.1", firstEstimate)
}
