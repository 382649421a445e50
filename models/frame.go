package models

import "fmt"

// IndicatorFrame is a BarSeries extended with named indicator columns. Each
// column is a float64 slice parallel to the bars; entries where the indicator
// window has insufficient history are NaN, never zero. Columns are appended
// once and not mutated afterwards.
type IndicatorFrame struct {
	Symbol string
	Bars   []Bar

	columns map[string][]float64
	names   []string
}

// NewIndicatorFrame wraps a validated series with an empty column set.
func NewIndicatorFrame(series *BarSeries) *IndicatorFrame {
	return &IndicatorFrame{
		Symbol:  series.Symbol,
		Bars:    series.Bars,
		columns: make(map[string][]float64),
	}
}

func (f *IndicatorFrame) Len() int { return len(f.Bars) }

// AddColumn appends a named column. It panics if the column length does not
// match the bar count or if the name is already taken, since either is a
// programming error in the indicator engine, not an input condition.
func (f *IndicatorFrame) AddColumn(name string, values []float64) {
	if len(values) != len(f.Bars) {
		panic(fmt.Sprintf("frame %s: column %s has length %d, want %d", f.Symbol, name, len(values), len(f.Bars)))
	}
	if _, ok := f.columns[name]; ok {
		panic(fmt.Sprintf("frame %s: column %s already exists", f.Symbol, name))
	}
	f.columns[name] = values
	f.names = append(f.names, name)
}

// Column returns the named column, or false if it was never computed.
func (f *IndicatorFrame) Column(name string) ([]float64, bool) {
	col, ok := f.columns[name]
	return col, ok
}

// ColumnNames returns column names in insertion order.
func (f *IndicatorFrame) ColumnNames() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}
