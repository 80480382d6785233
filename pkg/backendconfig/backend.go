package backendconfig

import (
	stderrors "errors"

	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	"github.com/qompute/qschemas/pkg/noise"
	"github.com/qompute/qschemas/pkg/variant"
)

// Backend config tags.
const (
	TagAerConfig          = "AerConfig"
	TagAerStateConfig     = "AerStateConfig"
	TagAerUnitaryConfig   = "AerUnitaryConfig"
	TagBraketConfig       = "BraketConfig"
	TagQuantinuumConfig   = "QuantinuumConfig"
	TagIBMQConfig         = "IBMQConfig"
	TagIBMQEmulatorConfig = "IBMQEmulatorConfig"
	TagProjectQConfig     = "ProjectQConfig"
	TagQulacsConfig       = "QulacsConfig"
)

// nestedErr prefixes the parent field name onto a structured violation
// raised by a nested model.
func nestedErr(err error, fieldName string) error {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.WithField(fieldName)
	}
	return err
}

// AerConfig targets the qiskit-aer QASM simulator.
type AerConfig struct {
	Type             string                 `json:"type"`
	NoiseModel       *noise.AerNoiseModel   `json:"noise_model,omitempty"`
	SimulationMethod string                 `json:"simulation_method"`
	CrosstalkParams  *noise.CrosstalkParams `json:"crosstalk_params,omitempty"`
	NQubits          int                    `json:"n_qubits"`
	Seed             *int64                 `json:"seed,omitempty"`
}

// NewAerConfig returns an AerConfig with defaults applied.
func NewAerConfig() *AerConfig {
	return &AerConfig{
		Type:             TagAerConfig,
		SimulationMethod: "automatic",
		NQubits:          40,
	}
}

// Tag implements variant.Record.
func (c *AerConfig) Tag() string { return TagAerConfig }

// Validate implements variant.Record.
func (c *AerConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagAerConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if c.NoiseModel != nil {
		if err := c.NoiseModel.Validate(); err != nil {
			return nestedErr(err, "noise_model")
		}
	}
	if err := field.Positive("n_qubits", c.NQubits); err != nil {
		return err
	}
	if c.Seed != nil {
		return field.Int64("seed", *c.Seed)
	}
	return nil
}

// AerStateConfig targets the qiskit-aer state vector simulator.
type AerStateConfig struct {
	Type    string `json:"type"`
	NQubits int    `json:"n_qubits"`
}

// NewAerStateConfig returns an AerStateConfig with defaults applied.
func NewAerStateConfig() *AerStateConfig {
	return &AerStateConfig{Type: TagAerStateConfig, NQubits: 40}
}

// Tag implements variant.Record.
func (c *AerStateConfig) Tag() string { return TagAerStateConfig }

// Validate implements variant.Record.
func (c *AerStateConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagAerStateConfig)
	if err != nil {
		return err
	}
	c.Type = tag
	return field.Positive("n_qubits", c.NQubits)
}

// AerUnitaryConfig targets the qiskit-aer unitary simulator.
type AerUnitaryConfig struct {
	Type    string `json:"type"`
	NQubits int    `json:"n_qubits"`
}

// NewAerUnitaryConfig returns an AerUnitaryConfig with defaults applied.
func NewAerUnitaryConfig() *AerUnitaryConfig {
	return &AerUnitaryConfig{Type: TagAerUnitaryConfig, NQubits: 40}
}

// Tag implements variant.Record.
func (c *AerUnitaryConfig) Tag() string { return TagAerUnitaryConfig }

// Validate implements variant.Record.
func (c *AerUnitaryConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagAerUnitaryConfig)
	if err != nil {
		return err
	}
	c.Type = tag
	return field.Positive("n_qubits", c.NQubits)
}

// BraketConfig runs circuits on quantum devices and simulators through
// Amazon's Braket service. A config is either local (local_device only) or
// remote (device_type, provider, device, s3_bucket and s3_folder all set).
type BraketConfig struct {
	Type            string  `json:"type"`
	Local           bool    `json:"local"`
	LocalDevice     string  `json:"local_device"`
	DeviceType      *string `json:"device_type,omitempty"`
	Provider        *string `json:"provider,omitempty"`
	Device          *string `json:"device,omitempty"`
	S3Bucket        *string `json:"s3_bucket,omitempty"`
	S3Folder        *string `json:"s3_folder,omitempty"`
	SimplifyInitial bool    `json:"simplify_initial"`
}

// NewBraketConfig returns a BraketConfig with defaults applied.
func NewBraketConfig() *BraketConfig {
	return &BraketConfig{Type: TagBraketConfig, LocalDevice: "default"}
}

// Tag implements variant.Record.
func (c *BraketConfig) Tag() string { return TagBraketConfig }

// Validate implements variant.Record.
func (c *BraketConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagBraketConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	remote := map[string]bool{
		"device_type": c.DeviceType != nil,
		"provider":    c.Provider != nil,
		"device":      c.Device != nil,
		"s3_bucket":   c.S3Bucket != nil,
		"s3_folder":   c.S3Folder != nil,
	}
	if c.Local {
		return field.NoneSet("local config must only have local and local_device set", remote)
	}
	return field.AllSet("remote config must have device_type, provider, device, s3_bucket and s3_folder set", remote)
}

// QuantinuumConfig runs circuits on Quantinuum's quantum devices and
// simulators.
type QuantinuumConfig struct {
	Type               string                 `json:"type"`
	DeviceName         string                 `json:"device_name"`
	Simulator          string                 `json:"simulator"`
	MachineDebug       bool                   `json:"machine_debug"`
	AttemptBatching    bool                   `json:"attempt_batching"`
	AllowImplicitSwaps bool                   `json:"allow_implicit_swaps"`
	Postprocess        bool                   `json:"postprocess"`
	NoisySimulation    bool                   `json:"noisy_simulation"`
	Target2QBGate      *string                `json:"target_2qb_gate,omitempty"`
	UserGroup          *string                `json:"user_group,omitempty"`
	MaxBatchCost       int                    `json:"max_batch_cost"`
	CompilerOptions    *CompilerOptions       `json:"compiler_options,omitempty"`
	NoOpt              bool                   `json:"no_opt"`
	Allow2QGateRebase  bool                   `json:"allow_2q_gate_rebase"`
	LeakageDetection   bool                   `json:"leakage_detection"`
	SimplifyInitial    bool                   `json:"simplify_initial"`
	MaxCost            *int                   `json:"max_cost,omitempty"`
	ErrorParams        *noise.UserErrorParams `json:"error_params,omitempty"`
}

// NewQuantinuumConfig returns a QuantinuumConfig with defaults applied.
func NewQuantinuumConfig() *QuantinuumConfig {
	return &QuantinuumConfig{
		Type:               TagQuantinuumConfig,
		Simulator:          "state-vector",
		AllowImplicitSwaps: true,
		MaxBatchCost:       2000,
		NoOpt:              true,
	}
}

// Tag implements variant.Record.
func (c *QuantinuumConfig) Tag() string { return TagQuantinuumConfig }

// Validate implements variant.Record.
func (c *QuantinuumConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagQuantinuumConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("device_name", c.DeviceName); err != nil {
		return err
	}
	if c.CompilerOptions != nil {
		if err := c.CompilerOptions.Validate(); err != nil {
			return nestedErr(err, "compiler_options")
		}
	}
	return nil
}

// IBMQConfig runs circuits on IBM's quantum devices.
type IBMQConfig struct {
	Type            string  `json:"type"`
	BackendName     string  `json:"backend_name"`
	Instance        string  `json:"instance"`
	Region          *string `json:"region,omitempty"`
	Monitor         bool    `json:"monitor"`
	Postprocess     bool    `json:"postprocess"`
	SimplifyInitial bool    `json:"simplify_initial"`
}

// NewIBMQConfig returns an IBMQConfig with defaults applied.
func NewIBMQConfig() *IBMQConfig {
	return &IBMQConfig{Type: TagIBMQConfig}
}

// Tag implements variant.Record.
func (c *IBMQConfig) Tag() string { return TagIBMQConfig }

// Validate implements variant.Record.
func (c *IBMQConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagIBMQConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("backend_name", c.BackendName); err != nil {
		return err
	}
	return field.NotEmpty("instance", c.Instance)
}

// IBMQEmulatorConfig runs circuits on a hosted simulator using the noise
// model of a specific IBM quantum device.
type IBMQEmulatorConfig struct {
	Type        string  `json:"type"`
	BackendName string  `json:"backend_name"`
	Instance    string  `json:"instance"`
	Region      *string `json:"region,omitempty"`
	Seed        *int64  `json:"seed,omitempty"`
	Postprocess bool    `json:"postprocess"`
}

// NewIBMQEmulatorConfig returns an IBMQEmulatorConfig with defaults applied.
func NewIBMQEmulatorConfig() *IBMQEmulatorConfig {
	return &IBMQEmulatorConfig{Type: TagIBMQEmulatorConfig}
}

// Tag implements variant.Record.
func (c *IBMQEmulatorConfig) Tag() string { return TagIBMQEmulatorConfig }

// Validate implements variant.Record.
func (c *IBMQEmulatorConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagIBMQEmulatorConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if err := field.NotEmpty("backend_name", c.BackendName); err != nil {
		return err
	}
	if err := field.NotEmpty("instance", c.Instance); err != nil {
		return err
	}
	if c.Seed != nil {
		return field.Int64("seed", *c.Seed)
	}
	return nil
}

// ProjectQConfig targets the ProjectQ state vector simulator.
type ProjectQConfig struct {
	Type string `json:"type"`
}

// NewProjectQConfig returns a ProjectQConfig with defaults applied.
func NewProjectQConfig() *ProjectQConfig {
	return &ProjectQConfig{Type: TagProjectQConfig}
}

// Tag implements variant.Record.
func (c *ProjectQConfig) Tag() string { return TagProjectQConfig }

// Validate implements variant.Record.
func (c *ProjectQConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagProjectQConfig)
	if err != nil {
		return err
	}
	c.Type = tag
	return nil
}

// QulacsConfig targets the Qulacs simulator.
type QulacsConfig struct {
	Type       string `json:"type"`
	ResultType string `json:"result_type"`
	GPUSim     bool   `json:"gpu_sim"`
	Seed       *int64 `json:"seed,omitempty"`
}

// NewQulacsConfig returns a QulacsConfig with defaults applied.
func NewQulacsConfig() *QulacsConfig {
	return &QulacsConfig{Type: TagQulacsConfig, ResultType: "state_vector"}
}

// Tag implements variant.Record.
func (c *QulacsConfig) Tag() string { return TagQulacsConfig }

// Validate implements variant.Record.
func (c *QulacsConfig) Validate() error {
	tag, err := variant.CheckTag(c.Type, TagQulacsConfig)
	if err != nil {
		return err
	}
	c.Type = tag

	if c.Seed != nil {
		return field.Int64("seed", *c.Seed)
	}
	return nil
}
