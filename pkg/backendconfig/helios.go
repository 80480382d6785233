package backendconfig

import (
	"fmt"

	"github.com/qompute/qschemas/pkg/emulator"
	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// Helios config tags.
const (
	TagHeliosConfig         = "HeliosConfig"
	TagHeliosCheckerConfig  = "HeliosCheckerConfig"
	TagHeliosEmulatorConfig = "HeliosEmulatorConfig"
)

// KnownNexusEmulators lists the hosted Helios emulators that support the
// full feature set: replay simulation, depolarizing noise, seeding and run
// constraints.
var KnownNexusEmulators = []string{"Helios-1E-lite"}

// RunConstraints carries the administrative parameters for running on
// Quantinuum Systems.
type RunConstraints struct {
	AttemptBatching bool   `json:"attempt_batching"`
	MaxBatchCost    int    `json:"max_batch_cost"`
	MaxCost         int    `json:"max_cost"`
	Priority        string `json:"priority"`
}

// NewRunConstraints returns RunConstraints with defaults applied.
func NewRunConstraints() RunConstraints {
	return RunConstraints{
		MaxBatchCost: 2000,
		MaxCost:      100,
		Priority:     "normal",
	}
}

// UnmarshalJSON overlays the wire payload onto the declared defaults, so
// fields absent from the payload keep their default values.
func (r *RunConstraints) UnmarshalJSON(data []byte) error {
	type plain RunConstraints
	tmp := plain(NewRunConstraints())
	if err := jsonx.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*r = RunConstraints(tmp)
	return nil
}

// HeliosConfig targets Helios hardware systems.
type HeliosConfig struct {
	Type           string           `json:"type"`
	DeviceName     string           `json:"device_name"`
	RunConstraints RunConstraints   `json:"run_constraints"`
	Options        *CompilerOptions `json:"options,omitempty"`
}

// NewHeliosConfig returns a HeliosConfig with defaults applied.
func NewHeliosConfig() *HeliosConfig {
	return &HeliosConfig{Type: TagHeliosConfig, RunConstraints: NewRunConstraints()}
}

// Tag implements variant.Record.
func (c *HeliosConfig) Tag() string { return TagHeliosConfig }

// Validate implements variant.Record.
func (c *HeliosConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagHeliosConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("device_name", c.DeviceName); err != nil {
		return err
	}
	if c.Options != nil {
		if err := c.Options.Validate(); err != nil {
			return nestedErr(err, "options")
		}
	}
	return nil
}

// HeliosCheckerConfig targets Helios checker systems, which validate a
// program without executing it.
type HeliosCheckerConfig struct {
	Type       string           `json:"type"`
	DeviceName string           `json:"device_name"`
	Options    *CompilerOptions `json:"options,omitempty"`
}

// NewHeliosCheckerConfig returns a HeliosCheckerConfig with defaults applied.
func NewHeliosCheckerConfig() *HeliosCheckerConfig {
	return &HeliosCheckerConfig{Type: TagHeliosCheckerConfig}
}

// Tag implements variant.Record.
func (c *HeliosCheckerConfig) Tag() string { return TagHeliosCheckerConfig }

// Validate implements variant.Record.
func (c *HeliosCheckerConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagHeliosCheckerConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("device_name", c.DeviceName); err != nil {
		return err
	}
	if c.Options != nil {
		if err := c.Options.Validate(); err != nil {
			return nestedErr(err, "options")
		}
	}
	return nil
}

// HeliosEmulatorConfig targets a Helios emulator system. Emulators outside
// KnownNexusEmulators run a restricted feature set: replay simulation,
// depolarizing noise and run constraints are rejected, and seed fields are
// ignored on the device (see Advisories).
type HeliosEmulatorConfig struct {
	Type           string                  `json:"type"`
	Name           string                  `json:"name"`
	Seed           *int64                  `json:"seed,omitempty"`
	NQubits        int                     `json:"n_qubits"`
	Simulator      emulator.SimulatorSlot  `json:"simulator"`
	ErrorModel     emulator.ErrorModelSlot `json:"error_model"`
	RunConstraints *RunConstraints         `json:"run_constraints,omitempty"`
	Options        *CompilerOptions        `json:"options,omitempty"`
}

// NewHeliosEmulatorConfig returns a HeliosEmulatorConfig with defaults
// applied: statevector simulation under the QSystem error model.
func NewHeliosEmulatorConfig() *HeliosEmulatorConfig {
	return &HeliosEmulatorConfig{
		Type:       TagHeliosEmulatorConfig,
		Simulator:  emulator.SimulatorSlot{Simulator: emulator.NewStatevectorSimulator()},
		ErrorModel: emulator.ErrorModelSlot{ErrorModel: emulator.NewQSystemErrorModel()},
	}
}

// Tag implements variant.Record.
func (c *HeliosEmulatorConfig) Tag() string { return TagHeliosEmulatorConfig }

// knownNexusEmulator reports whether the named emulator supports the full
// feature set.
func (c *HeliosEmulatorConfig) knownNexusEmulator() bool {
	for _, name := range KnownNexusEmulators {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Validate implements variant.Record.
func (c *HeliosEmulatorConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagHeliosEmulatorConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("name", c.Name); err != nil {
		return err
	}
	if c.Simulator.Simulator == nil {
		return errors.NewConstraintViolation("simulator", "must be set", nil)
	}
	if c.ErrorModel.ErrorModel == nil {
		return errors.NewConstraintViolation("error_model", "must be set", nil)
	}
	if c.Seed != nil {
		if err := field.Int64("seed", *c.Seed); err != nil {
			return err
		}
	}
	if err := field.AtLeast("n_qubits", c.NQubits, 1); err != nil {
		return err
	}
	if c.Options != nil {
		if err := c.Options.Validate(); err != nil {
			return nestedErr(err, "options")
		}
	}

	if !c.knownNexusEmulator() {
		if _, replay := c.Simulator.Simulator.(*emulator.ClassicalReplaySimulator); replay {
			return errors.NewCrossFieldViolation(
				fmt.Sprintf("ClassicalReplaySimulator is only available for emulators in %v", KnownNexusEmulators),
				"name", "simulator")
		}
		if _, depol := c.ErrorModel.ErrorModel.(*emulator.DepolarizingErrorModel); depol {
			return errors.NewCrossFieldViolation(
				fmt.Sprintf("DepolarizingErrorModel is only available for emulators in %v", KnownNexusEmulators),
				"name", "error_model")
		}
		if c.RunConstraints != nil {
			return errors.NewCrossFieldViolation(
				fmt.Sprintf("run_constraints are only available for emulators in %v", KnownNexusEmulators),
				"name", "run_constraints")
		}
	}
	if c.RunConstraints != nil && c.RunConstraints.AttemptBatching {
		return errors.NewCrossFieldViolation(
			"batching is not available for Helios emulators", "run_constraints.attempt_batching")
	}
	return nil
}

// Advisories reports the non-fatal compatibility notes for the config:
// seed fields that the targeted emulator will ignore. The list is empty
// for emulators in KnownNexusEmulators.
func (c *HeliosEmulatorConfig) Advisories() []string {
	if c.knownNexusEmulator() {
		return nil
	}
	var advisories []string
	if c.Seed != nil {
		advisories = append(advisories,
			fmt.Sprintf("seed is ignored for emulators not in %v", KnownNexusEmulators))
	}
	if c.Simulator.Simulator != nil && emulator.Seed(c.Simulator.Simulator) != nil {
		advisories = append(advisories,
			fmt.Sprintf("simulator.seed is ignored for emulators not in %v", KnownNexusEmulators))
	}
	if c.ErrorModel.ErrorModel != nil && emulator.Seed(c.ErrorModel.ErrorModel) != nil {
		advisories = append(advisories,
			fmt.Sprintf("error_model.seed is ignored for emulators not in %v", KnownNexusEmulators))
	}
	return advisories
}
