package models

import (
	"math"
	"sort"
)

// FactorDirection indicates whether a price factor raised or lowered the fare
type FactorDirection string

const (
	FactorIncrease FactorDirection = "increase"
	FactorDecrease FactorDirection = "decrease"
)

// PriceFactor is one rule-triggered multiplicative adjustment to the base fare.
// Factors are reported in the order the pricing rules evaluated them.
type PriceFactor struct {
	Label      string          `json:"label"`
	Multiplier float64         `json:"multiplier"`
	Direction  FactorDirection `json:"direction"`
}

// PercentChange returns the factor's percentage impact, e.g. 1.25 -> +25.
func (f PriceFactor) PercentChange() float64 {
	return (f.Multiplier - 1) * 100
}

// QuotedFare is the computed fare for a trip under the current search context,
// before taxes and fees. It is recomputed whenever trip or criteria change and
// is never persisted.
type QuotedFare struct {
	TripID     string        `json:"trip_id"`
	BasePrice  int64         `json:"base_price"`
	FinalPrice int64         `json:"final_price"`
	Factors    []PriceFactor `json:"factors"`
}

// Difference returns the signed amount the quote moved from the base price.
func (q *QuotedFare) Difference() int64 {
	return q.FinalPrice - q.BasePrice
}

// TopFactors returns up to n factors ranked by absolute percentage impact,
// for compact display. Ties keep rule evaluation order. The full ordered
// list stays available on Factors.
func (q *QuotedFare) TopFactors(n int) []PriceFactor {
	if n >= len(q.Factors) {
		return q.Factors
	}
	ranked := make([]PriceFactor, len(q.Factors))
	copy(ranked, q.Factors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].PercentChange()) > math.Abs(ranked[j].PercentChange())
	})
	return ranked[:n]
}
