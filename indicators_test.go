package vela

import (
	"math"
	"testing"

	"github.com/sigmalabs/vela/models"
	"github.com/sigmalabs/vela/ta"
)

const dayMillis = int64(24 * 60 * 60 * 1000)

// testSeries builds a validated daily series where every bar's open, high and
// low collapse onto the close. startDay offsets the timestamps so tests can
// construct misaligned histories.
func testSeries(t *testing.T, symbol string, closes []float64, startDay int) *models.BarSeries {
	t.Helper()
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: int64(startDay+i+1) * dayMillis,
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	series, err := models.NewBarSeries(symbol, bars)
	if err != nil {
		t.Fatalf("building series for %s: %v", symbol, err)
	}
	return series
}

func column(t *testing.T, frame *models.IndicatorFrame, name string) []float64 {
	t.Helper()
	values, ok := frame.Column(name)
	if !ok {
		t.Fatalf("missing column %s", name)
	}
	return values
}

func TestBuildIndicatorFrame_AllColumnsPresent(t *testing.T) {
	series := testSeries(t, "AAPL", []float64{100, 102, 101, 105, 108, 107, 110, 112, 111, 115}, 0)
	frame := BuildIndicatorFrame(series)

	want := []string{
		ColSMA20, ColSMA50, ColEMA12, ColEMA26, ColRSI,
		ColMACD, ColMACDSignal, ColMACDHistogram,
		ColBBMiddle, ColBBUpper, ColBBLower, ColBBWidth, ColBBPosition,
		ColVolumeSMA, ColVolumeRatio,
		ColMomentum10, ColMomentum20, ColMomentum50,
		ColVolatility20, ColATR,
	}
	names := frame.ColumnNames()
	if len(names) != len(want) {
		t.Fatalf("expected %d columns, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("column %d: expected %s, got %s", i, name, names[i])
		}
		if len(column(t, frame, name)) != series.Len() {
			t.Errorf("column %s: length mismatch", name)
		}
	}
}

func TestBuildIndicatorFrame_ShortSeries(t *testing.T) {
	// 10 bars: every 20-period column is undefined everywhere, but the EMAs
	// are defined from the first bar with the first close as seed.
	series := testSeries(t, "AAPL", []float64{100, 102, 101, 105, 108, 107, 110, 112, 111, 115}, 0)
	frame := BuildIndicatorFrame(series)

	for _, name := range []string{ColSMA20, ColSMA50, ColMomentum10, ColMomentum20, ColVolatility20} {
		for i, v := range column(t, frame, name) {
			if !ta.IsUndefined(v) {
				t.Errorf("%s index %d: expected undefined on a 10-bar series, got %v", name, i, v)
			}
		}
	}

	ema12 := column(t, frame, ColEMA12)
	if ema12[0] != 100 {
		t.Errorf("EMA_12 seed: expected 100, got %v", ema12[0])
	}
	for i, v := range ema12 {
		if ta.IsUndefined(v) {
			t.Errorf("EMA_12 index %d: expected defined", i)
		}
	}
}

func TestBuildIndicatorFrame_Sma20Warmup(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	frame := BuildIndicatorFrame(testSeries(t, "MSFT", closes, 0))
	sma := column(t, frame, ColSMA20)
	for i := 0; i < 19; i++ {
		if !ta.IsUndefined(sma[i]) {
			t.Errorf("index %d: expected undefined warmup, got %v", i, sma[i])
		}
	}
	if math.Abs(sma[19]-10.5) > 1e-9 {
		t.Errorf("index 19: expected mean 10.5, got %v", sma[19])
	}
}

func TestBuildIndicatorFrame_ConstantPrice(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	frame := BuildIndicatorFrame(testSeries(t, "KO", closes, 0))

	// No price moves: zero volatility once the window fills, undefined RSI,
	// collapsed bands with an undefined position.
	vol := column(t, frame, ColVolatility20)
	for i := 20; i < len(closes); i++ {
		if vol[i] != 0 {
			t.Errorf("Volatility_20 index %d: expected 0, got %v", i, vol[i])
		}
	}
	for i, v := range column(t, frame, ColRSI) {
		if !ta.IsUndefined(v) {
			t.Errorf("RSI index %d: expected undefined, got %v", i, v)
		}
	}
	width := column(t, frame, ColBBWidth)
	position := column(t, frame, ColBBPosition)
	for i := 19; i < len(closes); i++ {
		if width[i] != 0 {
			t.Errorf("BB_Width index %d: expected 0, got %v", i, width[i])
		}
		if !ta.IsUndefined(position[i]) {
			t.Errorf("BB_Position index %d: expected undefined on zero width", i)
		}
	}
	ratio := column(t, frame, ColVolumeRatio)
	for i := 19; i < len(closes); i++ {
		if math.Abs(ratio[i]-1) > 1e-9 {
			t.Errorf("Volume_Ratio index %d: expected 1, got %v", i, ratio[i])
		}
	}
}

func TestBuildIndicatorFrame_Deterministic(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	series := testSeries(t, "SPY", closes, 0)

	first := BuildIndicatorFrame(series)
	second := BuildIndicatorFrame(series)
	for _, name := range first.ColumnNames() {
		a := column(t, first, name)
		b := column(t, second, name)
		for i := range a {
			same := a[i] == b[i] || (ta.IsUndefined(a[i]) && ta.IsUndefined(b[i]))
			if !same {
				t.Errorf("%s index %d: %v != %v", name, i, a[i], b[i])
			}
		}
	}
}
