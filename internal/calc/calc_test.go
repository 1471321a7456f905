package calc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompoundInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		compounds float64
		expected  float64
	}{
		{name: "monthly compounding", principal: 1000, rate: 0.05, years: 5, compounds: 12, expected: 1283.36},
		{name: "yearly compounding", principal: 1000, rate: 0.05, years: 2, compounds: DefaultCompounds, expected: 1102.50},
		{name: "zero rate keeps principal", principal: 250, rate: 0, years: 10, compounds: 4, expected: 250},
		{name: "zero time keeps principal", principal: 250, rate: 0.1, years: 0, compounds: 4, expected: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompoundInterest(tt.principal, tt.rate, tt.years, tt.compounds)
			assert.InDelta(t, tt.expected, result, 0.01)
		})
	}
}

func TestCompoundInterest_MatchesFormula(t *testing.T) {
	for _, p := range []float64{1, 500, 12345.67} {
		for _, r := range []float64{-0.5, 0.01, 0.2} {
			for _, c := range []float64{1, 4, 365} {
				for _, years := range []float64{0.5, 3, 10} {
					expected := p * math.Pow(1+r/c, c*years)
					assert.InEpsilon(t, expected, CompoundInterest(p, r, years, c), 1e-12)
				}
			}
		}
	}
}

func TestCompoundInterest_ZeroCompounds(t *testing.T) {
	zero := 0.0
	assert.True(t, math.IsInf(0.05/zero, 1))
	assert.NotPanics(t, func() {
		CompoundInterest(1000, 0.05, 5, 0)
	})
	assert.Equal(t, 1000.0, CompoundInterest(1000, 0.05, 5, 0))
}

func TestRectangleArea(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		height   float64
		expected float64
	}{
		{name: "fixture values", width: 5.0, height: 10.0, expected: 50.0},
		{name: "zero width", width: 0, height: 10, expected: 0},
		{name: "negative side accepted", width: -2, height: 3, expected: -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RectangleArea(tt.width, tt.height))
		})
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "day before birthday", now: time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), expected: 33},
		{name: "on birthday", now: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), expected: 34},
		{name: "earlier month", now: time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC), expected: 33},
		{name: "later month", now: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), expected: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Age(birth, tt.now))
		})
	}
}

func TestFutureDate(t *testing.T) {
	from := time.Date(2024, time.February, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC), FutureDate(from, 10))
	assert.Equal(t, from, FutureDate(from, 0))
}
