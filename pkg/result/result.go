// Package result validates the wire form of Quantinuum Systems shot
// results. A result is a list of shots; each shot is a list of items; each
// item is a two-element array pairing a name with a scalar value or a list
// of scalar values.
package result

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

// MaxItemNameLen is the longest name a shot item may carry.
const MaxItemNameLen = 256

// ShotItem is one named value recorded during a shot. The wire form is a
// two-element array, not an object.
type ShotItem struct {
	Name  string
	Value interface{}
}

// UnmarshalJSON decodes the [name, value] pair form. Numbers are decoded
// as jsonx.Number so integer values keep 64-bit precision.
func (i *ShotItem) UnmarshalJSON(data []byte) error {
	var pair []interface{}
	if err := jsonx.UnmarshalNumeric(data, &pair); err != nil || len(pair) != 2 {
		return errors.NewConstraintViolation(
			"item", "must be a [name, value] pair", string(data))
	}
	name, ok := pair[0].(string)
	if !ok {
		return errors.NewConstraintViolation("item", "name must be a string", pair[0])
	}
	i.Name = name
	i.Value = pair[1]
	return nil
}

// MarshalJSON emits the [name, value] pair form.
func (i ShotItem) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal([2]interface{}{i.Name, i.Value})
}

// Validate checks the item name length and value kind. Values are ints,
// booleans or floats, or a list of those.
func (i *ShotItem) Validate() error {
	if err := field.MaxLen("name", i.Name, MaxItemNameLen); err != nil {
		return err
	}
	switch v := i.Value.(type) {
	case []interface{}:
		for _, item := range v {
			if err := checkScalar(i.Name, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return checkScalar(i.Name, i.Value)
	}
}

// checkScalar accepts the scalar result kinds: int, bool, float.
func checkScalar(name string, value interface{}) error {
	switch v := value.(type) {
	case bool, float64, float32, int, int32, int64:
		return nil
	case jsonx.Number:
		// A wire number without a fraction or exponent is an integer and
		// must sit within the signed 64-bit bounds.
		if !strings.ContainsAny(v.String(), ".eE") {
			_, err := field.Int64FromNumber(name, v)
			return err
		}
		if _, err := v.Float64(); err != nil {
			return errors.NewConstraintViolation(name, "must be a valid number", v.String())
		}
		return nil
	default:
		return errors.NewConstraintViolation(
			name, "must be an int, bool, float or list of those", value)
	}
}

// Shot is the ordered list of items recorded during a single shot.
type Shot []ShotItem

// Validate checks every item in the shot.
func (s Shot) Validate() error {
	for idx := range s {
		if err := s[idx].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QSysResult is the full wire result: one Shot per executed shot.
type QSysResult []Shot

// Decode parses and validates a wire result payload.
func Decode(data []byte) (QSysResult, error) {
	var res QSysResult
	if err := jsonx.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "malformed result payload")
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Validate checks every shot in the result.
func (r QSysResult) Validate() error {
	for idx, shot := range r {
		if err := shot.Validate(); err != nil {
			var structured *errors.Error
			if stderrors.As(err, &structured) {
				return structured.WithField(fmt.Sprintf("shot[%d]", idx))
			}
			return err
		}
	}
	return nil
}
