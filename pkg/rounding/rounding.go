// Package rounding holds the decimal rounding rules shared by the depot
// calculations. Values are rounded in decimal space so that results such as
// 1.005 -> 1.01 do not depend on the binary float representation.
package rounding

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places rounds v half away from zero to the given number of decimal places.
func Places(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Liters rounds a volume to 2 decimals.
func Liters(v float64) float64 { return Places(v, 2) }

// Kilograms rounds a mass to 2 decimals.
func Kilograms(v float64) float64 { return Places(v, 2) }

// Density rounds a density to 4 decimals.
func Density(v float64) float64 { return Places(v, 4) }

// Temperature rounds a temperature to 1 decimal.
func Temperature(v float64) float64 { return Places(v, 1) }

// HalfUp rounds to the nearest integer, ties towards positive infinity.
func HalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Mass returns volume x density rounded to 2 decimals.
func Mass(volume, density float64) float64 {
	return Kilograms(decimal.NewFromFloat(volume).Mul(decimal.NewFromFloat(density)).InexactFloat64())
}
