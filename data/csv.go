// Package data supplies materialized bar series to the pipeline and persists
// its results. All I/O for the module lives here, outside the analytic core.
package data

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/sigmalabs/vela/logger"
	"github.com/sigmalabs/vela/models"
)

// historySuffix is the per-symbol bar file naming convention, e.g.
// AAPL_history.csv.
const historySuffix = "_history.csv"

// LoadBarSeries reads and validates one symbol's bar history from a CSV file.
func LoadBarSeries(path, symbol string) (*models.BarSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bars := []models.Bar{}
	if err := gocsv.UnmarshalFile(file, &bars); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return models.NewBarSeries(symbol, bars)
}

// LoadBatch loads every requested symbol's history file from dir. Symbols
// whose file is missing or fails validation are skipped with a logged
// warning; the batch degrades instead of failing.
func LoadBatch(dir string, symbols []string) (map[string]*models.BarSeries, error) {
	batch := make(map[string]*models.BarSeries, len(symbols))
	for _, symbol := range symbols {
		path := filepath.Join(dir, symbol+historySuffix)
		series, err := LoadBarSeries(path, symbol)
		if err != nil {
			logger.Errorf("load: skipping %s: %v", symbol, err)
			continue
		}
		batch[symbol] = series
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("no loadable bar series in %s", dir)
	}
	return batch, nil
}

// ListSymbols discovers the symbols with history files in dir.
func ListSymbols(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+historySuffix))
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(match)
		symbols = append(symbols, strings.TrimSuffix(name, historySuffix))
	}
	sort.Strings(symbols)
	return symbols, nil
}

// WriteRiskMetricsCSV writes one row per scored symbol, sorted by symbol.
func WriteRiskMetricsCSV(path string, risk map[string]models.RiskMetrics) error {
	rows := make([]models.RiskMetrics, 0, len(risk))
	for _, m := range risk {
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.Marshal(&rows, file)
}

// WriteCorrelationCSV writes the matrix with a leading symbol column, the
// same square layout the correlation heatmap tooling expects. The header is
// dynamic, so this uses the plain csv writer rather than gocsv.
func WriteCorrelationCSV(path string, matrix *models.CorrelationMatrix) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	symbols := matrix.Symbols()
	if err := w.Write(append([]string{""}, symbols...)); err != nil {
		return err
	}
	for _, a := range symbols {
		row := make([]string, 0, len(symbols)+1)
		row = append(row, a)
		for _, b := range symbols {
			v, _ := matrix.At(a, b)
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteAllocationsJSON writes the three target portfolios.
func WriteAllocationsJSON(path string, set models.AllocationSet) error {
	payload, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0644)
}
