package variant

import (
	"fmt"

	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

// Encode serializes a validated record to its canonical wire bytes. Field
// order follows the variant's declaration order, unset optional fields are
// omitted, and the discriminator tag is always present, so repeated calls
// on an unchanged record produce byte-identical output.
func Encode(r Record) ([]byte, error) {
	data, err := jsonx.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("cannot serialize variant %q", r.Tag()))
	}
	return data, nil
}

// ToWire returns the wire object form of a validated record. Numeric
// values are carried as json.Number so the object round-trips 64-bit
// integers losslessly.
func ToWire(r Record) (map[string]interface{}, error) {
	data, err := Encode(r)
	if err != nil {
		return nil, err
	}
	obj, err := jsonx.UnmarshalObject(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("cannot build wire object for variant %q", r.Tag()))
	}
	return obj, nil
}

// TagFor returns the discriminator tag Encode would emit for the record.
func TagFor(r Record) string {
	return r.Tag()
}

// CheckTag normalizes a record's stored discriminator against its static
// tag: an unset value is filled in, a mismatched one is rejected. Variants
// call this first in Validate so the tag can never diverge from the type.
func CheckTag(current, want string) (string, error) {
	if current == "" {
		return want, nil
	}
	if current != want {
		return "", errors.NewConstraintViolation("type", fmt.Sprintf("must be %q", want), current)
	}
	return current, nil
}
