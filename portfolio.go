package vela

import (
	"github.com/jinzhu/copier"

	"github.com/sigmalabs/vela/models"
)

// Allocation rule tables. The profiles are table-driven: the ranking only
// gates which growth watchlist members qualify for the aggressive profile, it
// never scales a weight. Keeping the tables as package-level values keeps the
// rule set auditable and testable in isolation.
var (
	// GrowthWatchlist members receive AggressiveGrowthWeight when they also
	// rank inside the top AggressiveRankCutoff symbols by score.
	GrowthWatchlist = []string{"NVDA", "TSLA", "PLTR", "SNOW", "CRWD", "DDOG", "MDB"}

	// AggressiveBase holds the fixed index and cash weights of the
	// aggressive profile; watchlist weights are added on top.
	AggressiveBase = models.Allocation{
		"QQQ":       0.15,
		"ARKK":      0.05,
		models.Cash: 0.10,
	}

	// ModerateAllocation is fully fixed: a large-cap core, sector
	// diversifiers, broad index funds, and cash.
	ModerateAllocation = models.Allocation{
		"AAPL": 0.125, "MSFT": 0.125, "GOOGL": 0.125, "AMZN": 0.125,
		"JPM": 0.05, "JNJ": 0.05, "PG": 0.05, "HD": 0.05, "BA": 0.05, "XOM": 0.05,
		"SPY": 0.10, "VTI": 0.05,
		models.Cash: 0.05,
	}

	// ConservativeAllocation is fully fixed: defensive names, broad index
	// funds, and a large cash reserve.
	ConservativeAllocation = models.Allocation{
		"BRK.B": 0.05, "WMT": 0.05, "KO": 0.05, "PFE": 0.05,
		"VZ": 0.05, "T": 0.05, "JNJ": 0.05, "PG": 0.05,
		"SPY": 0.25, "VTI": 0.15,
		models.Cash: 0.20,
	}
)

const (
	// AggressiveGrowthWeight is assigned to each qualifying watchlist symbol.
	AggressiveGrowthWeight = 0.10
	// AggressiveRankCutoff is how deep into the score ranking a watchlist
	// symbol may sit and still qualify.
	AggressiveRankCutoff = 15
)

// BuildAllocations derives the three target portfolios from the descending
// (symbol, score) ranking. The returned maps are deep copies, so callers can
// adjust them without touching the rule tables.
func BuildAllocations(ranking []models.SymbolScore) models.AllocationSet {
	return models.AllocationSet{
		Aggressive:   aggressiveAllocation(ranking),
		Moderate:     cloneAllocation(ModerateAllocation),
		Conservative: cloneAllocation(ConservativeAllocation),
	}
}

// aggressiveAllocation grants the fixed growth weight to every watchlist
// symbol found inside the rank cutoff, then layers on the fixed base weights.
func aggressiveAllocation(ranking []models.SymbolScore) models.Allocation {
	cutoff := AggressiveRankCutoff
	if cutoff > len(ranking) {
		cutoff = len(ranking)
	}
	top := make(map[string]bool, cutoff)
	for _, entry := range ranking[:cutoff] {
		top[entry.Symbol] = true
	}

	allocation := cloneAllocation(AggressiveBase)
	for _, symbol := range GrowthWatchlist {
		if top[symbol] {
			allocation[symbol] = AggressiveGrowthWeight
		}
	}
	return allocation
}

func cloneAllocation(src models.Allocation) models.Allocation {
	dst := models.Allocation{}
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		// The tables are plain map[string]float64; a copy failure is a bug.
		panic(err)
	}
	return dst
}
