package models

// BatchResult is everything one pipeline run produces for a batch of symbols.
// All maps are keyed by symbol. Symbols skipped for insufficient history are
// present in Frames but absent from Risk and Ranking.
type BatchResult struct {
	RunID       string
	Frames      map[string]*IndicatorFrame
	Risk        map[string]RiskMetrics
	Ranking     []SymbolScore
	Correlation *CorrelationMatrix
	Allocations AllocationSet
}
