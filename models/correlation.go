package models

import "sort"

// CorrelationMatrix holds pairwise Pearson correlation coefficients for the
// symbols that survived timestamp alignment. The matrix is symmetric with a
// unit diagonal; both invariants are enforced by Set.
type CorrelationMatrix struct {
	symbols []string
	index   map[string]int
	data    [][]float64
}

// NewCorrelationMatrix allocates an identity-diagonal matrix for the given
// symbols. Symbols are stored sorted so batch output is deterministic.
func NewCorrelationMatrix(symbols []string) *CorrelationMatrix {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)

	index := make(map[string]int, len(sorted))
	data := make([][]float64, len(sorted))
	for i, s := range sorted {
		index[s] = i
		data[i] = make([]float64, len(sorted))
		data[i][i] = 1.0
	}
	return &CorrelationMatrix{symbols: sorted, index: index, data: data}
}

// Symbols returns the included symbols in sorted order.
func (m *CorrelationMatrix) Symbols() []string {
	out := make([]string, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// Has reports whether the symbol survived alignment.
func (m *CorrelationMatrix) Has(symbol string) bool {
	_, ok := m.index[symbol]
	return ok
}

// Set stores the coefficient for a pair in both orientations.
func (m *CorrelationMatrix) Set(a, b string, v float64) {
	i, ok := m.index[a]
	if !ok {
		return
	}
	j, ok := m.index[b]
	if !ok {
		return
	}
	m.data[i][j] = v
	m.data[j][i] = v
}

// At returns the coefficient for a pair; ok is false when either symbol was
// dropped from the matrix.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.data[i][j], true
}

func (m *CorrelationMatrix) Len() int { return len(m.symbols) }
