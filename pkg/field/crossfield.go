package field

import (
	"sort"
	"strings"

	jsonx "github.com/qompute/qschemas/pkg/json"

	"github.com/qompute/qschemas/pkg/errors"
)

// MutuallyExclusive reports a violation when both named optional fields
// are set at the same time.
func MutuallyExclusive(aName string, aSet bool, bName string, bSet bool) error {
	if aSet && bSet {
		return errors.NewCrossFieldViolation("cannot both be set", aName, bName)
	}
	return nil
}

// NoneSet reports a violation naming every field in fields that is set.
// The map holds field name -> whether the field carries a value.
func NoneSet(rule string, fields map[string]bool) error {
	offending := setFields(fields, true)
	if len(offending) == 0 {
		return nil
	}
	return errors.NewCrossFieldViolation(rule, offending...)
}

// AllSet reports a violation naming every field in fields that is unset.
func AllSet(rule string, fields map[string]bool) error {
	missing := setFields(fields, false)
	if len(missing) == 0 {
		return nil
	}
	return errors.NewCrossFieldViolation(rule, missing...)
}

func setFields(fields map[string]bool, want bool) []string {
	var out []string
	for name, set := range fields {
		if set == want {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// OptionValue checks an open option-bag value against the allowed
// primitive kinds: string, bounded 64-bit integer, boolean, float, or a
// homogeneous list of floats. Everything else is rejected. This is the
// allow-and-validate-type policy for option bags, as opposed to the
// ignore-unknown-keys policy of fixed-shape records.
func OptionValue(key string, value interface{}) error {
	switch v := value.(type) {
	case string, bool, float64, float32:
		return nil
	case int:
		return Int64(key, int64(v))
	case int32:
		return nil
	case int64:
		return Int64(key, v)
	case jsonx.Number:
		// Integer literals must fit the signed 64-bit wire bounds.
		if isIntegerLiteral(v.String()) {
			_, err := Int64FromNumber(key, v)
			return err
		}
		if _, err := v.Float64(); err == nil {
			return nil
		}
		return errors.NewConstraintViolation(key, "must be a valid number", v.String())
	case []float64, []float32:
		return nil
	case []interface{}:
		return floatList(key, v)
	default:
		return errors.NewConstraintViolation(
			key, "must be a string, integer, boolean, float or list of floats", value)
	}
}

// isIntegerLiteral reports whether a wire number was written without a
// fraction or exponent.
func isIntegerLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// floatList checks that every element of a wire list is a float.
func floatList(key string, items []interface{}) error {
	for _, item := range items {
		switch it := item.(type) {
		case float64, float32:
			continue
		case jsonx.Number:
			// A wire number in a list must be a float: integer literals
			// are rejected to keep list elements homogeneous.
			if isIntegerLiteral(it.String()) {
				return errors.NewConstraintViolation(key, "lists must only contain floats", it.String())
			}
			if _, err := it.Float64(); err != nil {
				return errors.NewConstraintViolation(key, "lists must only contain floats", it.String())
			}
		default:
			return errors.NewConstraintViolation(key, "lists must only contain floats", item)
		}
	}
	return nil
}
