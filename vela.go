// Package vela turns per-symbol bar histories into technical indicator
// frames, risk metrics, a cross-symbol correlation matrix, and rule-based
// target allocations. The pipeline is a pure transform: callers supply
// materialized bar series and take materialized results away; no I/O happens
// inside the engine.
package vela

import (
	"errors"
	"sync"

	"github.com/fatih/structs"
	"github.com/google/uuid"

	"github.com/sigmalabs/vela/logger"
	"github.com/sigmalabs/vela/models"
	"github.com/sigmalabs/vela/settings"
	"github.com/sigmalabs/vela/utils"
)

// ErrEmptyBatch is returned when Run is handed no series at all.
var ErrEmptyBatch = errors.New("batch contains no bar series")

// Engine runs the analytics pipeline for one batch of symbols.
type Engine struct {
	cfg settings.Config
}

// NewEngine creates an engine, filling in defaults for unset limits.
func NewEngine(cfg settings.Config) *Engine {
	defaults := settings.Default()
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.MinHistory <= 0 {
		cfg.MinHistory = defaults.MinHistory
	}
	if cfg.TradingDays <= 0 {
		cfg.TradingDays = defaults.TradingDays
	}
	return &Engine{cfg: cfg}
}

// Run executes the full pipeline: per-symbol indicator frames and risk
// metrics fan out across a bounded worker pool, then the correlation matrix,
// the score ranking, and the three allocations are built from the joined
// results. Symbols with short histories lose their risk metrics but keep
// their indicator frame; nothing short of an empty batch fails the run.
func (e *Engine) Run(batch map[string]*models.BarSeries) (*models.BatchResult, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &models.BatchResult{
		RunID:  uuid.New().String(),
		Frames: make(map[string]*models.IndicatorFrame, len(batch)),
		Risk:   make(map[string]models.RiskMetrics, len(batch)),
	}
	logger.Infof("run %s: analyzing %d symbols with %d workers", result.RunID, len(batch), e.cfg.Workers)

	sem := make(chan struct{}, e.cfg.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for symbol, series := range batch {
		wg.Add(1)
		go func(symbol string, series *models.BarSeries) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			frame := BuildIndicatorFrame(series)
			metrics, err := ComputeRiskMetrics(symbol, series.Closes(), e.cfg.MinHistory, e.cfg.TradingDays)

			mu.Lock()
			defer mu.Unlock()
			result.Frames[symbol] = frame
			if err != nil {
				logger.Infof("run %s: skipping risk metrics: %v", result.RunID, err)
				return
			}
			result.Risk[symbol] = metrics
			logger.Debugf("run %s: %s risk metrics %s", result.RunID, symbol,
				utils.CreateKeyValuePairs(structs.Map(metrics), true))
		}(symbol, series)
	}
	wg.Wait()

	result.Correlation = ComputeCorrelationMatrix(batch)
	result.Ranking = RankByScore(result.Risk)
	result.Allocations = BuildAllocations(result.Ranking)

	logger.Infof("run %s: %d symbols scored, %d in correlation matrix",
		result.RunID, len(result.Ranking), result.Correlation.Len())
	return result, nil
}
