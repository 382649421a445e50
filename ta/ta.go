// Package ta provides the windowed technical analysis primitives used by the
// indicator engine. Every function returns a slice the same length as its
// input; positions where the trailing window has insufficient history are NaN,
// never zero. Simple moving averages come from github.com/markcheno/go-talib,
// the recursive and return-based transforms are implemented here because their
// seeding differs from talib's.
package ta

import (
	"log"
	"math"

	talib "github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Undefined returns the sentinel used for values the window cannot produce.
func Undefined() float64 { return math.NaN() }

// IsUndefined reports whether v is the undefined sentinel.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Sma calculates the trailing simple moving average over period observations.
func Sma(values []float64, period int) []float64 {
	if period < 1 {
		log.Fatal("Length of the sma must be at least 1")
	}
	out := nans(len(values))
	if len(values) < period {
		return out
	}
	sma := talib.Sma(values, period)
	copy(out[period-1:], sma[period-1:])
	return out
}

// Ema calculates the exponentially weighted moving average with smoothing
// span, ema[i] = alpha*values[i] + (1-alpha)*ema[i-1], alpha = 2/(span+1),
// seeded from the first defined value. Undefined inputs are skipped.
func Ema(values []float64, span int) []float64 {
	if span <= 1 {
		log.Fatal("Span of the ema must be greater than 1")
	}
	out := nans(len(values))
	alpha := 2.0 / (float64(span) + 1.0)
	seeded := false
	var ema float64
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !seeded {
			ema = v
			seeded = true
		} else {
			ema = alpha*v + (1-alpha)*ema
		}
		out[i] = ema
	}
	return out
}

// Rsi calculates the relative strength index from trailing means of gains and
// losses over period deltas. When the trailing loss is zero the result is
// undefined rather than clamped to 100.
func Rsi(values []float64, period int) []float64 {
	n := len(values)
	out := nans(n)
	if n <= period {
		return out
	}
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	var gainSum, lossSum float64
	for i := 1; i < n; i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		gain := gainSum / float64(period)
		loss := lossSum / float64(period)
		if loss == 0 {
			continue
		}
		rs := gain / loss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// Macd calculates the MACD line, its signal line, and the histogram.
func Macd(values []float64, fastSpan, slowSpan, signalSpan int) ([]float64, []float64, []float64) {
	fast := Ema(values, fastSpan)
	slow := Ema(values, slowSpan)
	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = fast[i] - slow[i]
	}
	signal := Ema(macd, signalSpan)
	histogram := make([]float64, len(values))
	for i := range values {
		histogram[i] = macd[i] - signal[i]
	}
	return macd, signal, histogram
}

// RollingStd calculates the trailing sample standard deviation over period
// observations. Windows that contain an undefined value are undefined.
func RollingStd(values []float64, period int) []float64 {
	if period < 2 {
		log.Fatal("Period of the rolling std must be at least 2")
	}
	out := nans(len(values))
	for i := period - 1; i < len(values); i++ {
		out[i] = stat.StdDev(values[i-period+1:i+1], nil)
	}
	return out
}

// BBands calculates Bollinger bands: the middle band is the period SMA, the
// upper and lower bands sit width standard deviations away from it.
func BBands(values []float64, period int, width float64) ([]float64, []float64, []float64) {
	middle := Sma(values, period)
	std := RollingStd(values, period)
	upper := make([]float64, len(values))
	lower := make([]float64, len(values))
	for i := range values {
		upper[i] = middle[i] + width*std[i]
		lower[i] = middle[i] - width*std[i]
	}
	return upper, middle, lower
}

// Momentum calculates the k-period fractional price change,
// values[i]/values[i-k] - 1.
func Momentum(values []float64, k int) []float64 {
	out := nans(len(values))
	for i := k; i < len(values); i++ {
		out[i] = values[i]/values[i-k] - 1
	}
	return out
}

// PctChange calculates one-period simple returns with an undefined first entry.
func PctChange(values []float64) []float64 {
	out := nans(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i]/values[i-1] - 1
	}
	return out
}

// TrueRange calculates the per-bar true range. The first bar has no prior
// close, so its true range is high minus low.
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		if i == 0 {
			out[i] = high[i] - low[i]
			continue
		}
		tr := high[i] - low[i]
		if hc := math.Abs(high[i] - close[i-1]); hc > tr {
			tr = hc
		}
		if lc := math.Abs(low[i] - close[i-1]); lc > tr {
			tr = lc
		}
		out[i] = tr
	}
	return out
}

// Atr calculates the trailing simple mean of the true range over period bars.
func Atr(high, low, close []float64, period int) []float64 {
	return Sma(TrueRange(high, low, close), period)
}

// Div divides num by den elementwise. Entries where the denominator is zero
// or either side is undefined come out undefined.
func Div(num, den []float64) []float64 {
	out := nans(len(num))
	for i := range num {
		if den[i] == 0 || math.IsNaN(den[i]) || math.IsNaN(num[i]) {
			continue
		}
		out[i] = num[i] / den[i]
	}
	return out
}
