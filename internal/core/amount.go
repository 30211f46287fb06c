// Package core defines the finance tracker's domain model and the pure
// computations derived from it.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrAmountMissing covers an absent or unparseable amount field.
	ErrAmountMissing = errors.New("amount is required")
	// ErrAmountNotPositive covers a parseable amount that is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be a positive number")
)

// ParseAmount converts a user-entered amount string into currency units.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. The two
// failure modes are distinct because the form surfaces different messages for
// them: an empty or non-numeric input is "missing", while a parseable value
// that is not strictly positive is "not positive".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrAmountMissing
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrAmountMissing
	}
	if v <= 0 {
		return 0, ErrAmountNotPositive
	}
	return v, nil
}
