// Package calc holds the small pure computations: compound interest,
// rectangle area and a couple of date helpers.
package calc

import (
	"math"
	"time"
)

// DefaultCompounds is the compounding frequency used when none is given.
const DefaultCompounds = 1

// CompoundInterest returns principal * (1 + rate/compounds)^(compounds*time).
// A zero compounds value divides by zero: the base becomes non-finite and,
// since the exponent is then zero too, math.Pow collapses it to 1. No error
// is raised either way.
func CompoundInterest(principal, rate, time, compounds float64) float64 {
	return principal * math.Pow(1+rate/compounds, compounds*time)
}

// RectangleArea returns width * height. Negative sides are accepted.
func RectangleArea(width, height float64) float64 {
	return width * height
}

// Age returns the number of whole years between birth and now.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// FutureDate returns from shifted by the given number of days.
func FutureDate(from time.Time, days int) time.Time {
	return from.AddDate(0, 0, days)
}
