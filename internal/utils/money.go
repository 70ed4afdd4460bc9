package utils

import "math"

// RoundAmount rounds a monetary amount to two decimal places.
// All stored and displayed amounts in the application go through this.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
