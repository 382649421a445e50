package vela

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sigmalabs/vela/models"
)

// ErrInsufficientHistory marks a symbol whose close history is too short for
// risk metrics. The symbol is skipped, not the batch.
var ErrInsufficientHistory = errors.New("insufficient history for risk metrics")

// Returns computes one-period simple returns of a close-price series. The
// result has one fewer entry than the input.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = closes[i]/closes[i-1] - 1
	}
	return out
}

// ComputeRiskMetrics derives the return distribution summary for one symbol.
// The history must hold at least minHistory observations, otherwise
// ErrInsufficientHistory is returned and the symbol is excluded from scoring.
// periodsPerYear is the annualization factor (252 for daily bars).
func ComputeRiskMetrics(symbol string, closes []float64, minHistory, periodsPerYear int) (models.RiskMetrics, error) {
	if len(closes) < minHistory {
		return models.RiskMetrics{}, fmt.Errorf("%s: %w (%d observations, need at least %d)",
			symbol, ErrInsufficientHistory, len(closes), minHistory)
	}

	returns := Returns(closes)
	mean, std := stat.MeanStdDev(returns, nil)

	annualReturn := mean * float64(periodsPerYear)
	annualVolatility := std * math.Sqrt(float64(periodsPerYear))
	sharpe := math.NaN()
	if annualVolatility != 0 {
		sharpe = annualReturn / annualVolatility
	}

	return models.RiskMetrics{
		Symbol:           symbol,
		AnnualReturn:     annualReturn,
		AnnualVolatility: annualVolatility,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown(returns),
		VaR95:            linearQuantile(returns, 0.05),
		Skewness:         stat.Skew(returns, nil),
		Kurtosis:         stat.ExKurtosis(returns, nil),
	}, nil
}

// linearQuantile is the linear-interpolated empirical quantile: the value at
// fractional rank p*(n-1) of the sorted sample.
func linearQuantile(sample []float64, p float64) float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// maxDrawdown walks the cumulative product of (1+r), tracks the running peak,
// and reports the most negative peak-to-trough fractional decline. Zero means
// no drawdown was observed.
func maxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		dd := (cumulative - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// Score is the risk-adjusted ranking score,
// (annual return / annual volatility) * (1 + sharpe). Zero-volatility symbols
// are undefined and excluded from the ranking.
func Score(m models.RiskMetrics) float64 {
	if m.AnnualVolatility == 0 {
		return math.NaN()
	}
	return (m.AnnualReturn / m.AnnualVolatility) * (1 + m.SharpeRatio)
}

// RankByScore sorts symbols descending by score, dropping symbols whose score
// is undefined. Ties break on symbol so the ranking is deterministic.
func RankByScore(risk map[string]models.RiskMetrics) []models.SymbolScore {
	ranking := make([]models.SymbolScore, 0, len(risk))
	for symbol, m := range risk {
		score := Score(m)
		if math.IsNaN(score) {
			continue
		}
		ranking = append(ranking, models.SymbolScore{Symbol: symbol, Score: score})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Symbol < ranking[j].Symbol
	})
	return ranking
}
