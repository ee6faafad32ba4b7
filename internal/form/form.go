// Package form coerces raw form values into the numbers the pricing engine
// expects. It never fails: anything unusable becomes zero.
package form

import (
	"math"
	"strconv"
	"strings"
)

// MaxNumber bounds every coerced value so that the products and sums the
// pricing engine forms from them stay finite.
const MaxNumber = 1e9

// Number parses raw as a non-negative decimal. Both "12.5" and "12,5" are
// accepted. Empty, invalid, negative or non-finite input yields 0; anything
// above MaxNumber yields MaxNumber.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, MaxNumber)
}

// Quantity parses a unit count; anything below 1 becomes 1.
func Quantity(raw string) int {
	v := Number(raw)
	if v < 1 {
		return 1
	}
	return int(math.Floor(v))
}

// Bool reports whether raw is a checked checkbox or a truthy flag.
func Bool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// OptionalID parses a positive row id; zero means unset.
func OptionalID(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
