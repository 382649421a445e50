package models

// RiskMetrics is the per-symbol return distribution summary computed from one
// close-price history. Sharpe is NaN when the volatility is zero.
type RiskMetrics struct {
	Symbol           string  `csv:"symbol"`
	AnnualReturn     float64 `csv:"annual_return"`
	AnnualVolatility float64 `csv:"annual_volatility"`
	SharpeRatio      float64 `csv:"sharpe_ratio"`
	MaxDrawdown      float64 `csv:"max_drawdown"`
	VaR95            float64 `csv:"var_95"`
	Skewness         float64 `csv:"skewness"`
	Kurtosis         float64 `csv:"kurtosis"`
}

// SymbolScore is one entry of the descending risk-adjusted ranking.
type SymbolScore struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}
