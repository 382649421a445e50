package vela

import (
	"fmt"
	"math"
	"testing"

	"github.com/sigmalabs/vela/models"
)

// rankingOf builds a descending ranking out of the given symbols.
func rankingOf(symbols ...string) []models.SymbolScore {
	ranking := make([]models.SymbolScore, len(symbols))
	for i, symbol := range symbols {
		ranking[i] = models.SymbolScore{Symbol: symbol, Score: float64(len(symbols) - i)}
	}
	return ranking
}

func sumWeights(a models.Allocation) float64 {
	total := 0.0
	for _, w := range a {
		total += w
	}
	return total
}

func TestBuildAllocations_ModerateFixedTable(t *testing.T) {
	set := BuildAllocations(rankingOf("NVDA", "AAPL"))

	want := map[string]float64{
		"AAPL": 0.125, "MSFT": 0.125, "GOOGL": 0.125, "AMZN": 0.125,
		"JPM": 0.05, "JNJ": 0.05, "PG": 0.05, "HD": 0.05, "BA": 0.05, "XOM": 0.05,
		"SPY": 0.10, "VTI": 0.05, models.Cash: 0.05,
	}
	if len(set.Moderate) != len(want) {
		t.Fatalf("expected %d moderate positions, got %d", len(want), len(set.Moderate))
	}
	for symbol, weight := range want {
		if set.Moderate[symbol] != weight {
			t.Errorf("moderate %s: expected %v, got %v", symbol, weight, set.Moderate[symbol])
		}
	}
	if !closeTo(sumWeights(set.Moderate), 1.0, 1e-12) {
		t.Errorf("moderate weights must sum to 1, got %v", sumWeights(set.Moderate))
	}
}

func TestBuildAllocations_ConservativeFixedTable(t *testing.T) {
	set := BuildAllocations(nil)

	defensive := []string{"BRK.B", "WMT", "KO", "PFE", "VZ", "T", "JNJ", "PG"}
	for _, symbol := range defensive {
		if set.Conservative[symbol] != 0.05 {
			t.Errorf("conservative %s: expected 0.05, got %v", symbol, set.Conservative[symbol])
		}
	}
	if set.Conservative["SPY"] != 0.25 || set.Conservative["VTI"] != 0.15 {
		t.Error("conservative index weights wrong")
	}
	if set.Conservative[models.Cash] != 0.20 {
		t.Errorf("conservative cash: expected 0.20, got %v", set.Conservative[models.Cash])
	}
	if !closeTo(sumWeights(set.Conservative), 1.0, 1e-12) {
		t.Errorf("conservative weights must sum to 1, got %v", sumWeights(set.Conservative))
	}
}

func TestBuildAllocations_AggressiveWatchlistGating(t *testing.T) {
	// IBM outranks everything but is not on the watchlist; NVDA is both
	// ranked and listed; TSLA is listed but ranked below the cutoff.
	symbols := []string{"IBM", "NVDA"}
	for i := 0; i < AggressiveRankCutoff-1; i++ {
		symbols = append(symbols, fmt.Sprintf("FILL%02d", i))
	}
	symbols = append(symbols, "TSLA")
	set := BuildAllocations(rankingOf(symbols...))

	if set.Aggressive["NVDA"] != AggressiveGrowthWeight {
		t.Errorf("NVDA: expected %v, got %v", AggressiveGrowthWeight, set.Aggressive["NVDA"])
	}
	if _, ok := set.Aggressive["IBM"]; ok {
		t.Error("IBM must not enter the aggressive profile, rank alone does not qualify")
	}
	if _, ok := set.Aggressive["TSLA"]; ok {
		t.Error("TSLA ranked below the cutoff must not qualify")
	}
	if set.Aggressive["QQQ"] != 0.15 || set.Aggressive["ARKK"] != 0.05 {
		t.Error("aggressive base index weights wrong")
	}
	if set.Aggressive[models.Cash] != 0.10 {
		t.Errorf("aggressive cash: expected 0.10, got %v", set.Aggressive[models.Cash])
	}
}

func TestBuildAllocations_EmptyRanking(t *testing.T) {
	set := BuildAllocations(nil)
	if len(set.Aggressive) != len(AggressiveBase) {
		t.Errorf("empty ranking must yield only the base weights, got %v", set.Aggressive)
	}
}

func TestBuildAllocations_ShortRanking(t *testing.T) {
	set := BuildAllocations(rankingOf("NVDA"))
	if set.Aggressive["NVDA"] != AggressiveGrowthWeight {
		t.Errorf("a ranking shorter than the cutoff still qualifies its members, got %v", set.Aggressive)
	}
}

func TestBuildAllocations_ReturnsCopies(t *testing.T) {
	first := BuildAllocations(nil)
	first.Moderate["AAPL"] = math.Pi
	first.Conservative[models.Cash] = 0

	second := BuildAllocations(nil)
	if second.Moderate["AAPL"] != 0.125 {
		t.Error("mutating a result leaked into the moderate rule table")
	}
	if second.Conservative[models.Cash] != 0.20 {
		t.Error("mutating a result leaked into the conservative rule table")
	}
}
