// Package emulator defines the nested configuration families used by the
// Selene and Helios emulator backends: the runtime transport models, the
// fault-injection error models, and the classical simulation strategies.
// Each family is a closed tagged union dispatched on the "type" key.
package emulator

import (
	stderrors "errors"

	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// Runtimes is the closed family of emulator runtime variants.
var Runtimes = variant.NewFamily("runtime", "type")

// Runtime tags.
const (
	TagSimpleRuntime = "SimpleRuntime"
	TagHeliosRuntime = "HeliosRuntime"
)

func init() {
	Runtimes.MustRegister(TagSimpleRuntime, func() variant.Record { return NewSimpleRuntime() })
	Runtimes.MustRegister(TagHeliosRuntime, func() variant.Record { return NewHeliosRuntime() })
}

// Runtime is one variant of the runtime family.
type Runtime interface {
	variant.Record
	runtimeVariant()
}

// RuntimeSlot holds exactly one runtime variant by value inside a parent
// config. It decodes itself by dispatching on the wire discriminator.
type RuntimeSlot struct {
	Runtime
}

// UnmarshalJSON dispatches the nested payload through the runtime family.
func (s *RuntimeSlot) UnmarshalJSON(data []byte) error {
	rec, err := Runtimes.Decode(data)
	if err != nil {
		return nestedErr(err, "runtime")
	}
	rt, ok := rec.(Runtime)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "runtime: not a runtime variant")
	}
	s.Runtime = rt
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s RuntimeSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.Runtime)
}

// nestedErr prefixes the parent field name onto a structured violation
// raised while decoding a nested record.
func nestedErr(err error, fieldName string) error {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.WithField(fieldName)
	}
	return err
}

// SimpleRuntime does not emulate the transport behavior of any specific
// system; operations are scheduled as submitted.
type SimpleRuntime struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
}

// NewSimpleRuntime returns a SimpleRuntime with defaults applied.
func NewSimpleRuntime() *SimpleRuntime {
	return &SimpleRuntime{Type: TagSimpleRuntime}
}

// Tag implements variant.Record.
func (r *SimpleRuntime) Tag() string { return TagSimpleRuntime }

func (r *SimpleRuntime) runtimeVariant() {}

// Validate implements variant.Record.
func (r *SimpleRuntime) Validate() error {
	tag, err := variant.CheckTag(r.Type, TagSimpleRuntime)
	if err != nil {
		return err
	}
	r.Type = tag

	if r.Seed != nil {
		return field.Int64("seed", *r.Seed)
	}
	return nil
}

// HeliosRuntime emulates the runtime of the Helios system, including ion
// transport.
type HeliosRuntime struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
}

// NewHeliosRuntime returns a HeliosRuntime with defaults applied.
func NewHeliosRuntime() *HeliosRuntime {
	return &HeliosRuntime{Type: TagHeliosRuntime}
}

// Tag implements variant.Record.
func (r *HeliosRuntime) Tag() string { return TagHeliosRuntime }

func (r *HeliosRuntime) runtimeVariant() {}

// Validate implements variant.Record.
func (r *HeliosRuntime) Validate() error {
	tag, err := variant.CheckTag(r.Type, TagHeliosRuntime)
	if err != nil {
		return err
	}
	r.Type = tag

	if r.Seed != nil {
		return field.Int64("seed", *r.Seed)
	}
	return nil
}
