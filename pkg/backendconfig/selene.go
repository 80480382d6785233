package backendconfig

import (
	"github.com/qompute/qschemas/pkg/emulator"
	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	"github.com/qompute/qschemas/pkg/variant"
)

// Selene config tags.
const (
	TagBaseSeleneConfig            = "BaseSeleneConfig"
	TagSeleneQuestConfig           = "SeleneQuestConfig"
	TagSeleneStimConfig            = "SeleneStimConfig"
	TagSeleneLeanConfig            = "SeleneLeanConfig"
	TagSeleneCoinflipConfig        = "SeleneCoinflipConfig"
	TagSeleneClassicalReplayConfig = "SeleneClassicalReplayConfig"
)

// MaxSeleneQuestQubits is the hosted qubit ceiling for the Selene QuEST
// statevector simulator.
const MaxSeleneQuestQubits = 28

// BaseSeleneConfig carries the configuration shared by every Selene
// emulator instance. It cannot be instantiated directly; only the concrete
// Selene configs embed it.
type BaseSeleneConfig struct {
	Runtime    emulator.RuntimeSlot    `json:"runtime"`
	ErrorModel emulator.ErrorModelSlot `json:"error_model"`
	Seed       *int64                  `json:"seed,omitempty"`
	NQubits    int                     `json:"n_qubits"`
}

// newBaseSeleneConfig returns the shared defaults: SimpleRuntime and
// NoErrorModel.
func newBaseSeleneConfig() BaseSeleneConfig {
	return BaseSeleneConfig{
		Runtime:    emulator.RuntimeSlot{Runtime: emulator.NewSimpleRuntime()},
		ErrorModel: emulator.ErrorModelSlot{ErrorModel: emulator.NewNoErrorModel()},
	}
}

// Tag implements variant.Record.
func (c *BaseSeleneConfig) Tag() string { return TagBaseSeleneConfig }

// Validate implements variant.Record. The base config is abstract, so a
// direct validation attempt always fails.
func (c *BaseSeleneConfig) Validate() error {
	return errors.NewAbstractInstantiation(TagBaseSeleneConfig)
}

// validateBase runs the shared Selene checks on behalf of a concrete
// config: the nested runtime and error model must be present and mutually
// compatible, the seed must sit within the signed 64-bit wire bounds, and
// at least one qubit must be simulated.
func (c *BaseSeleneConfig) validateBase() error {
	if c.Runtime.Runtime == nil {
		return errors.NewConstraintViolation("runtime", "must be set", nil)
	}
	if c.ErrorModel.ErrorModel == nil {
		return errors.NewConstraintViolation("error_model", "must be set", nil)
	}
	if _, qsystem := c.ErrorModel.ErrorModel.(*emulator.QSystemErrorModel); qsystem {
		if _, helios := c.Runtime.Runtime.(*emulator.HeliosRuntime); !helios {
			return errors.NewCrossFieldViolation(
				"QSystemErrorModel requires the HeliosRuntime", "error_model", "runtime")
		}
	}
	if c.Seed != nil {
		if err := field.Int64("seed", *c.Seed); err != nil {
			return err
		}
	}
	return field.AtLeast("n_qubits", c.NQubits, 1)
}

// SeleneQuestConfig runs the Selene QuEST statevector simulator. Hosted
// instances cap the simulated qubit count.
type SeleneQuestConfig struct {
	Type string `json:"type"`
	BaseSeleneConfig
}

// NewSeleneQuestConfig returns a SeleneQuestConfig with defaults applied.
func NewSeleneQuestConfig() *SeleneQuestConfig {
	return &SeleneQuestConfig{Type: TagSeleneQuestConfig, BaseSeleneConfig: newBaseSeleneConfig()}
}

// Tag implements variant.Record.
func (c *SeleneQuestConfig) Tag() string { return TagSeleneQuestConfig }

// Validate implements variant.Record.
func (c *SeleneQuestConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagSeleneQuestConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := c.validateBase(); err != nil {
		return err
	}
	return field.AtMost("n_qubits", c.NQubits, MaxSeleneQuestQubits)
}

// SeleneStimConfig runs the Selene Stim stabilizer simulator. Stim only
// simulates Clifford operations; the angle threshold decides how far
// rotations may sit from pi/2 before they are rejected.
type SeleneStimConfig struct {
	Type string `json:"type"`
	BaseSeleneConfig
	AngleThreshold float64 `json:"angle_threshold"`
}

// NewSeleneStimConfig returns a SeleneStimConfig with defaults applied.
func NewSeleneStimConfig() *SeleneStimConfig {
	return &SeleneStimConfig{
		Type:             TagSeleneStimConfig,
		BaseSeleneConfig: newBaseSeleneConfig(),
		AngleThreshold:   1e-8,
	}
}

// Tag implements variant.Record.
func (c *SeleneStimConfig) Tag() string { return TagSeleneStimConfig }

// Validate implements variant.Record.
func (c *SeleneStimConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagSeleneStimConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := c.validateBase(); err != nil {
		return err
	}
	return field.GreaterThan("angle_threshold", c.AngleThreshold, 0.0)
}

// SeleneLeanConfig runs the Selene Lean (low-entanglement approximation
// engine) tensor network simulator.
type SeleneLeanConfig struct {
	Type string `json:"type"`
	BaseSeleneConfig
	Backend            string   `json:"backend"`
	Precision          int      `json:"precision"`
	Chi                *int     `json:"chi,omitempty"`
	TruncationFidelity *float64 `json:"truncation_fidelity,omitempty"`
	ZeroThreshold      *float64 `json:"zero_threshold,omitempty"`
}

// NewSeleneLeanConfig returns a SeleneLeanConfig with defaults applied
// (CPU backend, 32-bit precision, unbounded chi).
func NewSeleneLeanConfig() *SeleneLeanConfig {
	return &SeleneLeanConfig{
		Type:             TagSeleneLeanConfig,
		BaseSeleneConfig: newBaseSeleneConfig(),
		Backend:          emulator.ComputeBackendCPU,
		Precision:        32,
	}
}

// Tag implements variant.Record.
func (c *SeleneLeanConfig) Tag() string { return TagSeleneLeanConfig }

// Validate implements variant.Record.
func (c *SeleneLeanConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagSeleneLeanConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := c.validateBase(); err != nil {
		return err
	}
	if err := field.OneOfString("backend", c.Backend,
		emulator.ComputeBackendCPU, emulator.ComputeBackendCUDA); err != nil {
		return err
	}
	if err := field.OneOfInt("precision", c.Precision, 32, 64); err != nil {
		return err
	}
	if c.Chi != nil {
		if err := field.Positive("chi", *c.Chi); err != nil {
			return err
		}
	}
	if c.TruncationFidelity != nil {
		if err := field.OpenClosed("truncation_fidelity", *c.TruncationFidelity, 0.0, 1.0); err != nil {
			return err
		}
	}
	if c.ZeroThreshold != nil {
		if err := field.OpenClosed("zero_threshold", *c.ZeroThreshold, 0.0, 1.0); err != nil {
			return err
		}
	}
	return emulator.CheckBondDimensionLimits(c.Backend, c.Chi, c.TruncationFidelity)
}

// SeleneCoinflipConfig runs the Selene coinflip simulator, which maintains
// no quantum state and answers every measurement with a biased coin flip.
type SeleneCoinflipConfig struct {
	Type string `json:"type"`
	BaseSeleneConfig
	Bias float64 `json:"bias"`
}

// NewSeleneCoinflipConfig returns a SeleneCoinflipConfig with defaults
// applied.
func NewSeleneCoinflipConfig() *SeleneCoinflipConfig {
	return &SeleneCoinflipConfig{
		Type:             TagSeleneCoinflipConfig,
		BaseSeleneConfig: newBaseSeleneConfig(),
		Bias:             0.5,
	}
}

// Tag implements variant.Record.
func (c *SeleneCoinflipConfig) Tag() string { return TagSeleneCoinflipConfig }

// Validate implements variant.Record.
func (c *SeleneCoinflipConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagSeleneCoinflipConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := c.validateBase(); err != nil {
		return err
	}
	return field.InRange("bias", c.Bias, 0.0, 1.0)
}

// SeleneClassicalReplayConfig runs the Selene classical replay simulator,
// which replays predefined measurement results for each shot without
// performing quantum operations.
type SeleneClassicalReplayConfig struct {
	Type string `json:"type"`
	BaseSeleneConfig
	Measurements [][]bool `json:"measurements"`
}

// NewSeleneClassicalReplayConfig returns a SeleneClassicalReplayConfig
// with defaults applied.
func NewSeleneClassicalReplayConfig() *SeleneClassicalReplayConfig {
	return &SeleneClassicalReplayConfig{
		Type:             TagSeleneClassicalReplayConfig,
		BaseSeleneConfig: newBaseSeleneConfig(),
		Measurements:     [][]bool{},
	}
}

// Tag implements variant.Record.
func (c *SeleneClassicalReplayConfig) Tag() string { return TagSeleneClassicalReplayConfig }

// Validate implements variant.Record.
func (c *SeleneClassicalReplayConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagSeleneClassicalReplayConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := c.validateBase(); err != nil {
		return err
	}
	if c.Measurements == nil {
		c.Measurements = [][]bool{}
	}
	return nil
}
