package models

import (
	"errors"
	"fmt"
)

// Validation errors returned by NewBarSeries.
var (
	ErrEmptySeries     = errors.New("bar series is empty")
	ErrUnorderedSeries = errors.New("bar timestamps must be strictly increasing")
	ErrInvalidBar      = errors.New("bar has invalid OHLCV values")
)

// Bar is a single trading-period observation. Bars are value types and are
// never mutated after the series that owns them has been validated.
type Bar struct {
	Timestamp int64   `csv:"timestamp" db:"timestamp"`
	Open      float64 `csv:"open" db:"open"`
	High      float64 `csv:"high" db:"high"`
	Low       float64 `csv:"low" db:"low"`
	Close     float64 `csv:"close" db:"close"`
	Volume    float64 `csv:"volume" db:"volume"`
}

// Validate checks the price and volume invariants of a single bar.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("%w: prices must be positive (timestamp %d)", ErrInvalidBar, b.Timestamp)
	}
	if b.Low > b.Open || b.Low > b.Close || b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("%w: low <= open,close <= high violated (timestamp %d)", ErrInvalidBar, b.Timestamp)
	}
	if b.Volume < 0 {
		return fmt.Errorf("%w: volume must be non-negative (timestamp %d)", ErrInvalidBar, b.Timestamp)
	}
	return nil
}

// BarSeries is the validated, ascending-timestamp bar history for one symbol.
// It is read-only to everything downstream of the constructor.
type BarSeries struct {
	Symbol string
	Bars   []Bar
}

// NewBarSeries validates bars and returns the series. Bars must be ordered by
// strictly increasing timestamp with no duplicates.
func NewBarSeries(symbol string, bars []Bar) (*BarSeries, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrEmptySeries)
	}
	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", symbol, err)
		}
		if i > 0 && bar.Timestamp <= bars[i-1].Timestamp {
			return nil, fmt.Errorf("%s: %w (index %d)", symbol, ErrUnorderedSeries, i)
		}
	}
	return &BarSeries{Symbol: symbol, Bars: bars}, nil
}

func (s *BarSeries) Len() int { return len(s.Bars) }

// Timestamps returns the timestamp column.
func (s *BarSeries) Timestamps() []int64 {
	out := make([]int64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Timestamp
	}
	return out
}

// Opens returns the open price column.
func (s *BarSeries) Opens() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Open
	}
	return out
}

// Highs returns the high price column.
func (s *BarSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low price column.
func (s *BarSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Closes returns the close price column.
func (s *BarSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the volume column.
func (s *BarSeries) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}
