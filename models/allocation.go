package models

// Cash is the reserved allocation key for the uninvested weight.
const Cash = "CASH"

// Allocation maps symbol-or-CASH to a target weight in [0, 1]. Weights within
// one profile are fixed by rule tables and are not required to sum to 1.0.
type Allocation map[string]float64

// AllocationSet holds the three rule-based target portfolios for one batch.
type AllocationSet struct {
	Aggressive   Allocation `json:"aggressive"`
	Moderate     Allocation `json:"moderate"`
	Conservative Allocation `json:"conservative"`
}
