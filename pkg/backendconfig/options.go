package backendconfig

import (
	"sort"

	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

// CompilerOptions is an open bag of flags for the Quantinuum Systems
// compiler. Unlike fixed-shape records, which silently ignore unknown wire
// keys, the bag accepts any key but restricts values to strings, bounded
// 64-bit integers, booleans, floats, and lists of floats.
type CompilerOptions map[string]interface{}

// UnmarshalJSON decodes the bag with numeric fidelity so integer flags
// survive the round trip untouched.
func (o *CompilerOptions) UnmarshalJSON(data []byte) error {
	obj, err := jsonx.UnmarshalObject(data)
	if err != nil {
		return err
	}
	*o = obj
	return nil
}

// Validate checks every option value against the allowed kinds, in key
// order so repeated runs report the same violation.
func (o CompilerOptions) Validate() error {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := field.OptionValue(key, o[key]); err != nil {
			return err
		}
	}
	return nil
}
