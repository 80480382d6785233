// Package field provides the constrained field primitives and cross-field
// validators used by variant records. All checks are pure functions: they
// inspect values and return a structured violation or nil, with no side
// effects, so they can be run concurrently and unit-tested in isolation.
package field

import (
	"fmt"
	"math"

	jsonx "github.com/qompute/qschemas/pkg/json"

	"github.com/qompute/qschemas/pkg/errors"
)

// InRange checks v against the inclusive range [lo, hi].
func InRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be in [%v, %v]", lo, hi), v)
	}
	return nil
}

// OpenClosed checks v against the half-open range (lo, hi].
func OpenClosed(name string, v, lo, hi float64) error {
	if v <= lo || v > hi {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be in (%v, %v]", lo, hi), v)
	}
	return nil
}

// GreaterThan checks v > lo (exclusive lower bound).
func GreaterThan(name string, v, lo float64) error {
	if v <= lo {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be greater than %v", lo), v)
	}
	return nil
}

// Positive checks v > 0.
func Positive(name string, v int) error {
	if v <= 0 {
		return errors.NewConstraintViolation(name, "must be positive", v)
	}
	return nil
}

// NonNegative checks v >= 0.
func NonNegative(name string, v int) error {
	if v < 0 {
		return errors.NewConstraintViolation(name, "must not be negative", v)
	}
	return nil
}

// AtLeast checks v >= min.
func AtLeast(name string, v, min int) error {
	if v < min {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be at least %d", min), v)
	}
	return nil
}

// AtMost checks v <= max.
func AtMost(name string, v, max int) error {
	if v > max {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be at most %d", max), v)
	}
	return nil
}

// NotEmpty checks that a required string field is set.
func NotEmpty(name, s string) error {
	if s == "" {
		return errors.NewConstraintViolation(name, "must not be empty", s)
	}
	return nil
}

// MaxLen checks that s is at most max bytes long.
func MaxLen(name, s string, max int) error {
	if len(s) > max {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must be at most %d characters", max), s)
	}
	return nil
}

// OneOfString checks that s is one of the allowed values.
func OneOfString(name, s string, allowed ...string) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return errors.NewConstraintViolation(name, fmt.Sprintf("must be one of %v", allowed), s)
}

// OneOfInt checks that v is one of the allowed values.
func OneOfInt(name string, v int, allowed ...int) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return errors.NewConstraintViolation(name, fmt.Sprintf("must be one of %v", allowed), v)
}

// MinItems checks that a collection holds at least min elements.
func MinItems(name string, length, min int) error {
	if length < min {
		return errors.NewConstraintViolation(name, fmt.Sprintf("must have at least %d items", min), length)
	}
	return nil
}

// Int64 checks the signed 64-bit wire bounds (-2^63, 2^63), exclusive at
// both ends. Downstream serializers cannot represent the boundary values,
// so math.MinInt64 is rejected; everything above 2^63-1 is already
// unrepresentable in an int64 and fails during number parsing.
func Int64(name string, v int64) error {
	if v == math.MinInt64 {
		return errors.NewConstraintViolation(name, "must be greater than -2^63", v)
	}
	return nil
}

// Int64FromNumber parses a wire number as a bounded 64-bit integer.
func Int64FromNumber(name string, n jsonx.Number) (int64, error) {
	v, err := n.Int64()
	if err != nil {
		return 0, errors.NewConstraintViolation(name, "must be an integer in (-2^63, 2^63)", n.String())
	}
	if err := Int64(name, v); err != nil {
		return 0, err
	}
	return v, nil
}
