package utils

import "math"

// PrizeShares maps final position (0-based) to its share of the prize pool.
// Positions beyond the table win nothing.
var PrizeShares = []float64{0.5, 0.3, 0.2}

// CalculatePrize returns the floored prize amount for a finishing position.
func CalculatePrize(prizePool, position int) int {
	if prizePool <= 0 || position < 0 || position >= len(PrizeShares) {
		return 0
	}
	return int(math.Floor(float64(prizePool) * PrizeShares[position]))
}
