// Package qschemas provides validation and round-trip JSON serialization
// for the configuration payloads that select and parameterize a quantum
// program's processing backend.
//
// Every config is a variant of a closed tagged union, dispatched on a wire
// discriminator key. The engine lives in pkg/variant; the backend configs
// and the public Validate/Decode/Encode surface live in pkg/backendconfig;
// the nested emulator families (runtimes, error models, simulators) live
// in pkg/emulator. Noise-model payloads, HyperTKET compilation configs,
// stored backend capability snapshots and shot-result validation round out
// the schema set.
//
// Payloads written by earlier schema versions remain decodable: legacy
// tags and field shapes are mapped to their current forms before
// validation, so callers never need to know which vintage a payload came
// from.
package qschemas
