package normalize

import "math"

// RoundHalfEven rounds v to the given number of decimal places, resolving
// ties to the even neighbour.
func RoundHalfEven(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

// Cents rounds a dollar amount to two decimal places.
func Cents(v float64) float64 {
	return RoundHalfEven(v, 2)
}
