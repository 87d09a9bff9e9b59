package calc

import "math"

// RoundUp rounds a value up to the next integer. 57.1 becomes 58.
func RoundUp(value float64) int {
	return int(math.Ceil(value))
}

// Round2 rounds a value half-away-from-zero to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
