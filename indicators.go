package vela

import (
	"github.com/sigmalabs/vela/models"
	"github.com/sigmalabs/vela/ta"
)

// Indicator column names. The engine appends them in this order.
const (
	ColSMA20         = "SMA_20"
	ColSMA50         = "SMA_50"
	ColEMA12         = "EMA_12"
	ColEMA26         = "EMA_26"
	ColRSI           = "RSI"
	ColMACD          = "MACD"
	ColMACDSignal    = "MACD_Signal"
	ColMACDHistogram = "MACD_Histogram"
	ColBBMiddle      = "BB_Middle"
	ColBBUpper       = "BB_Upper"
	ColBBLower       = "BB_Lower"
	ColBBWidth       = "BB_Width"
	ColBBPosition    = "BB_Position"
	ColVolumeSMA     = "Volume_SMA"
	ColVolumeRatio   = "Volume_Ratio"
	ColMomentum10    = "Momentum_10"
	ColMomentum20    = "Momentum_20"
	ColMomentum50    = "Momentum_50"
	ColVolatility20  = "Volatility_20"
	ColATR           = "ATR"
)

// Window parameters of the standard indicator set.
const (
	smaFastPeriod    = 20
	smaSlowPeriod    = 50
	emaFastSpan      = 12
	emaSlowSpan      = 26
	rsiPeriod        = 14
	macdSignalSpan   = 9
	bollingerPeriod  = 20
	bollingerWidth   = 2.0
	volumeSMAPeriod  = 20
	volatilityPeriod = 20
	atrPeriod        = 14
)

// BuildIndicatorFrame computes the full indicator column set for one series.
// It is a pure function of the series: running it twice on the same input
// yields identical frames.
func BuildIndicatorFrame(series *models.BarSeries) *models.IndicatorFrame {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	frame := models.NewIndicatorFrame(series)

	frame.AddColumn(ColSMA20, ta.Sma(closes, smaFastPeriod))
	frame.AddColumn(ColSMA50, ta.Sma(closes, smaSlowPeriod))
	frame.AddColumn(ColEMA12, ta.Ema(closes, emaFastSpan))
	frame.AddColumn(ColEMA26, ta.Ema(closes, emaSlowSpan))

	frame.AddColumn(ColRSI, ta.Rsi(closes, rsiPeriod))

	macd, signal, histogram := ta.Macd(closes, emaFastSpan, emaSlowSpan, macdSignalSpan)
	frame.AddColumn(ColMACD, macd)
	frame.AddColumn(ColMACDSignal, signal)
	frame.AddColumn(ColMACDHistogram, histogram)

	upper, middle, lower := ta.BBands(closes, bollingerPeriod, bollingerWidth)
	width := make([]float64, len(closes))
	position := make([]float64, len(closes))
	for i := range closes {
		width[i] = upper[i] - lower[i]
		position[i] = closes[i] - lower[i]
	}
	frame.AddColumn(ColBBMiddle, middle)
	frame.AddColumn(ColBBUpper, upper)
	frame.AddColumn(ColBBLower, lower)
	frame.AddColumn(ColBBWidth, width)
	frame.AddColumn(ColBBPosition, ta.Div(position, width))

	volumeSMA := ta.Sma(volumes, volumeSMAPeriod)
	frame.AddColumn(ColVolumeSMA, volumeSMA)
	frame.AddColumn(ColVolumeRatio, ta.Div(volumes, volumeSMA))

	frame.AddColumn(ColMomentum10, ta.Momentum(closes, 10))
	frame.AddColumn(ColMomentum20, ta.Momentum(closes, 20))
	frame.AddColumn(ColMomentum50, ta.Momentum(closes, 50))

	frame.AddColumn(ColVolatility20, ta.RollingStd(ta.PctChange(closes), volatilityPeriod))
	frame.AddColumn(ColATR, ta.Atr(highs, lows, closes, atrPeriod))

	return frame
}
