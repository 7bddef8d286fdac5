// Package costing prices drop-cable and link-build orders against a client
// price sheet. Everything in here is a pure function over plain values so the
// HTTP and persistence layers can call it without sharing any state.
package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Finite returns the value behind v, or 0 when v is nil, NaN or infinite.
func Finite(v *float64) float64 {
	if v == nil {
		return 0
	}
	return finite(*v)
}

// FiniteOr returns the value behind v, or def when v is nil, NaN or infinite.
func FiniteOr(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return finite(def)
	}
	return *v
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	v = finite(v)
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum2 adds the values exactly and rounds the result to two decimal places.
func Sum2(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(finite(v)))
	}
	f, _ := total.Round(2).Float64()
	return f
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
