// Package backendconfig defines the configuration records that select and
// parameterize a processing backend for a quantum program, together with
// the public validation and serialization surface.
//
// Every config is one variant of the Backends family, dispatched on the
// "type" key. Payloads from earlier schema versions are accepted through
// the family's legacy alias and rewrite tables and validate under the
// current rules.
package backendconfig

import (
	"github.com/qompute/qschemas/pkg/variant"
)

// Backends is the closed family of backend configuration variants.
var Backends = variant.NewFamily("backend config", "type")

func init() {
	Backends.MustRegister(TagAerConfig, func() variant.Record { return NewAerConfig() })
	Backends.MustRegister(TagAerStateConfig, func() variant.Record { return NewAerStateConfig() })
	Backends.MustRegister(TagAerUnitaryConfig, func() variant.Record { return NewAerUnitaryConfig() })
	Backends.MustRegister(TagBraketConfig, func() variant.Record { return NewBraketConfig() })
	Backends.MustRegister(TagQuantinuumConfig, func() variant.Record { return NewQuantinuumConfig() })
	Backends.MustRegister(TagIBMQConfig, func() variant.Record { return NewIBMQConfig() })
	Backends.MustRegister(TagIBMQEmulatorConfig, func() variant.Record { return NewIBMQEmulatorConfig() })
	Backends.MustRegister(TagProjectQConfig, func() variant.Record { return NewProjectQConfig() })
	Backends.MustRegister(TagQulacsConfig, func() variant.Record { return NewQulacsConfig() })
	Backends.MustRegister(TagSeleneQuestConfig, func() variant.Record { return NewSeleneQuestConfig() })
	Backends.MustRegister(TagSeleneStimConfig, func() variant.Record { return NewSeleneStimConfig() })
	Backends.MustRegister(TagSeleneLeanConfig, func() variant.Record { return NewSeleneLeanConfig() })
	Backends.MustRegister(TagSeleneCoinflipConfig, func() variant.Record { return NewSeleneCoinflipConfig() })
	Backends.MustRegister(TagSeleneClassicalReplayConfig, func() variant.Record { return NewSeleneClassicalReplayConfig() })
	Backends.MustRegister(TagHeliosConfig, func() variant.Record { return NewHeliosConfig() })
	Backends.MustRegister(TagHeliosCheckerConfig, func() variant.Record { return NewHeliosCheckerConfig() })
	Backends.MustRegister(TagHeliosEmulatorConfig, func() variant.Record { return NewHeliosEmulatorConfig() })

	Backends.MustRegisterAbstract(TagBaseSeleneConfig)

	registerLegacy(Backends)
}

// Validate dispatches a wire object to its config variant, constructs the
// record with defaults applied, and runs its validation rules. The caller's
// object is never mutated.
func Validate(obj map[string]interface{}) (variant.Record, error) {
	return Backends.DecodeObject(obj)
}

// Decode parses wire bytes into exactly one validated config record.
func Decode(data []byte) (variant.Record, error) {
	return Backends.Decode(data)
}

// Encode serializes a validated config to its canonical wire bytes.
func Encode(r variant.Record) ([]byte, error) {
	return variant.Encode(r)
}

// ToWire returns the wire object form of a validated config.
func ToWire(r variant.Record) (map[string]interface{}, error) {
	return variant.ToWire(r)
}

// TagFor returns the discriminator tag serialization would emit for a
// config record.
func TagFor(r variant.Record) string {
	return variant.TagFor(r)
}

// RegisterVariant adds a config variant to the family at startup.
// Registering an existing tag is a fatal configuration error.
func RegisterVariant(tag string, factory variant.Factory) error {
	return Backends.Register(tag, factory)
}

// Tags returns the sorted tags of every registered config variant.
func Tags() []string {
	return Backends.Tags()
}
