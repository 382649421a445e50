package vela

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sigmalabs/vela/logger"
	"github.com/sigmalabs/vela/models"
)

// minAlignedReturns is the smallest overlapping return count a symbol must
// contribute to stay in the correlation matrix.
const minAlignedReturns = 2

// ComputeCorrelationMatrix inner-joins all symbols' one-period returns on
// their timestamps and fills the pairwise Pearson matrix. Symbols that cannot
// contribute at least two aligned returns are dropped from the matrix, logged
// as a recoverable condition; the batch never fails here.
func ComputeCorrelationMatrix(batch map[string]*models.BarSeries) *models.CorrelationMatrix {
	returnsBySymbol := make(map[string]map[int64]float64, len(batch))
	included := make([]string, 0, len(batch))
	for symbol, series := range batch {
		keyed := keyedReturns(series)
		if len(keyed) < minAlignedReturns {
			logger.Infof("correlation: dropping %s, only %d returns", symbol, len(keyed))
			continue
		}
		returnsBySymbol[symbol] = keyed
		included = append(included, symbol)
	}
	sort.Strings(included)

	// Shrink the symbol set until the inner join spans at least two common
	// timestamps. Each pass removes the symbol whose absence frees up the
	// largest join, so one misaligned series cannot empty the whole matrix.
	for len(included) > 1 {
		common := alignTimestamps(included, returnsBySymbol)
		if len(common) >= minAlignedReturns {
			break
		}
		drop := bestDrop(included, returnsBySymbol)
		logger.Infof("correlation: dropping %s, insufficient timestamp overlap", drop)
		included = remove(included, drop)
	}

	matrix := models.NewCorrelationMatrix(included)
	if len(included) < 2 {
		return matrix
	}

	common := alignTimestamps(included, returnsBySymbol)
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })

	vectors := make(map[string][]float64, len(included))
	for _, symbol := range included {
		vec := make([]float64, len(common))
		for i, ts := range common {
			vec[i] = returnsBySymbol[symbol][ts]
		}
		vectors[symbol] = vec
	}

	for i, a := range included {
		for _, b := range included[i+1:] {
			matrix.Set(a, b, stat.Correlation(vectors[a], vectors[b], nil))
		}
	}
	return matrix
}

// keyedReturns maps each return to the timestamp of the bar that closed it.
func keyedReturns(series *models.BarSeries) map[int64]float64 {
	out := make(map[int64]float64, series.Len())
	for i := 1; i < series.Len(); i++ {
		out[series.Bars[i].Timestamp] = series.Bars[i].Close/series.Bars[i-1].Close - 1
	}
	return out
}

// alignTimestamps returns the timestamps present in every included series.
func alignTimestamps(symbols []string, returns map[string]map[int64]float64) []int64 {
	var common []int64
	for ts := range returns[symbols[0]] {
		shared := true
		for _, symbol := range symbols[1:] {
			if _, ok := returns[symbol][ts]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, ts)
		}
	}
	return common
}

// bestDrop picks the symbol whose removal leaves the largest inner join,
// breaking ties alphabetically.
func bestDrop(symbols []string, returns map[string]map[int64]float64) string {
	best := symbols[0]
	bestOverlap := -1
	for _, candidate := range symbols {
		rest := remove(symbols, candidate)
		overlap := len(alignTimestamps(rest, returns))
		if overlap > bestOverlap {
			best = candidate
			bestOverlap = overlap
		}
	}
	return best
}

func remove(symbols []string, symbol string) []string {
	out := make([]string, 0, len(symbols)-1)
	for _, s := range symbols {
		if s != symbol {
			out = append(out, s)
		}
	}
	return out
}
