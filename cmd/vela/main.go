package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	vela "github.com/sigmalabs/vela"
	"github.com/sigmalabs/vela/data"
	"github.com/sigmalabs/vela/logger"
	"github.com/sigmalabs/vela/models"
	"github.com/sigmalabs/vela/settings"
)

var (
	configFile string
	dataDir    string
	outputDir  string
	symbolsStr string
	fromDate   string
	toDate     string
	workers    int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vela",
		Short: "Batch market analytics over historical bar data",
		Long: `Computes technical indicators, risk metrics, a return-correlation matrix,
and rule-based target allocations from per-symbol bar histories.`,
		RunE: runRootCommand,
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory with <SYMBOL>_history.csv files")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for result files")
	rootCmd.Flags().StringVar(&symbolsStr, "symbols", "", "Comma-separated list of symbols to analyze")
	rootCmd.Flags().StringVar(&fromDate, "from", "", "Start date for database loads (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&toDate, "to", "", "End date for database loads (YYYY-MM-DD)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Per-symbol worker count")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if symbolsStr != "" {
		cfg.Symbols = strings.Split(symbolsStr, ",")
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logger.SetLevel(cfg.LogLevel)
	defer logger.Sync()

	batch, err := loadBatch(cfg)
	if err != nil {
		return err
	}

	engine := vela.NewEngine(cfg)
	result, err := engine.Run(batch)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	if err := data.WriteRiskMetricsCSV(filepath.Join(cfg.OutputDir, "risk_metrics.csv"), result.Risk); err != nil {
		return err
	}
	if err := data.WriteCorrelationCSV(filepath.Join(cfg.OutputDir, "correlation_matrix.csv"), result.Correlation); err != nil {
		return err
	}
	if err := data.WriteAllocationsJSON(filepath.Join(cfg.OutputDir, "portfolio_suggestions.json"), result.Allocations); err != nil {
		return err
	}
	logger.Infof("run %s: results written to %s", result.RunID, cfg.OutputDir)

	if cfg.Influx.Enabled {
		if err := data.RecordBatch(cfg.Influx, result); err != nil {
			logger.Errorf("run %s: influx recording failed: %v", result.RunID, err)
		}
	}
	return nil
}

// loadBatch materializes the bar series from the configured source. The
// engine itself never performs I/O.
func loadBatch(cfg settings.Config) (map[string]*models.BarSeries, error) {
	if cfg.Database.Enabled {
		start, end, err := dateRange()
		if err != nil {
			return nil, err
		}
		return data.GetBatch(cfg.Database.DSN, cfg.Database.Interval, cfg.Symbols, start, end)
	}

	symbols := cfg.Symbols
	if len(symbols) == 0 {
		discovered, err := data.ListSymbols(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		symbols = discovered
	}
	return data.LoadBatch(cfg.DataDir, symbols)
}

// dateRange resolves --from/--to, defaulting to the last two years of
// calendar days so a year of trading history is always covered.
func dateRange() (time.Time, time.Time, error) {
	end := time.Now().UTC()
	start := end.AddDate(-2, 0, 0)
	var err error
	if toDate != "" {
		end, err = time.Parse("2006-01-02", toDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if fromDate != "" {
		start, err = time.Parse("2006-01-02", fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	return start, end, nil
}
