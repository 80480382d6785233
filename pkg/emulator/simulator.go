package emulator

import (
	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// Simulators is the closed family of classical simulation strategies.
var Simulators = variant.NewFamily("simulator", "type")

// Simulator tags.
const (
	TagStatevectorSimulator        = "StatevectorSimulator"
	TagStabilizerSimulator         = "StabilizerSimulator"
	TagMatrixProductStateSimulator = "MatrixProductStateSimulator"
	TagCoinflipSimulator           = "CoinflipSimulator"
	TagClassicalReplaySimulator    = "ClassicalReplaySimulator"
)

// Classical compute backends available to the tensor-network simulator.
const (
	ComputeBackendCPU  = "cpu"
	ComputeBackendCUDA = "cuda"
)

// MaxCPUBondDimension is the largest virtual bond dimension the CPU
// compute backend supports.
const MaxCPUBondDimension = 256

func init() {
	Simulators.MustRegister(TagStatevectorSimulator, func() variant.Record { return NewStatevectorSimulator() })
	Simulators.MustRegister(TagStabilizerSimulator, func() variant.Record { return NewStabilizerSimulator() })
	Simulators.MustRegister(TagMatrixProductStateSimulator, func() variant.Record { return NewMatrixProductStateSimulator() })
	Simulators.MustRegister(TagCoinflipSimulator, func() variant.Record { return NewCoinflipSimulator() })
	Simulators.MustRegister(TagClassicalReplaySimulator, func() variant.Record { return NewClassicalReplaySimulator() })
}

// Simulator is one variant of the simulator family.
type Simulator interface {
	variant.Record
	simulatorVariant()
}

// SimulatorSlot holds exactly one simulator variant by value inside a
// parent config.
type SimulatorSlot struct {
	Simulator
}

// UnmarshalJSON dispatches the nested payload through the simulator family.
func (s *SimulatorSlot) UnmarshalJSON(data []byte) error {
	rec, err := Simulators.Decode(data)
	if err != nil {
		return nestedErr(err, "simulator")
	}
	sim, ok := rec.(Simulator)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "simulator: not a simulator variant")
	}
	s.Simulator = sim
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s SimulatorSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.Simulator)
}

// StatevectorSimulator simulates the full quantum state on a QuEST backend.
type StatevectorSimulator struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
}

// NewStatevectorSimulator returns a StatevectorSimulator with defaults applied.
func NewStatevectorSimulator() *StatevectorSimulator {
	return &StatevectorSimulator{Type: TagStatevectorSimulator}
}

// Tag implements variant.Record.
func (s *StatevectorSimulator) Tag() string { return TagStatevectorSimulator }

func (s *StatevectorSimulator) simulatorVariant() {}

// Validate implements variant.Record.
func (s *StatevectorSimulator) Validate() error {
	tag, err := variant.CheckTag(s.Type, TagStatevectorSimulator)
	if err != nil {
		return err
	}
	s.Type = tag

	if s.Seed != nil {
		return field.Int64("seed", *s.Seed)
	}
	return nil
}

// StabilizerSimulator simulates Clifford circuits on a Stim backend. The
// angle threshold decides how far rotations may sit from pi/2 before they
// are rejected, to avoid numerical instability or to inject approximations.
type StabilizerSimulator struct {
	Type           string  `json:"type"`
	Seed           *int64  `json:"seed,omitempty"`
	AngleThreshold float64 `json:"angle_threshold"`
}

// NewStabilizerSimulator returns a StabilizerSimulator with defaults applied.
func NewStabilizerSimulator() *StabilizerSimulator {
	return &StabilizerSimulator{Type: TagStabilizerSimulator, AngleThreshold: 1e-8}
}

// Tag implements variant.Record.
func (s *StabilizerSimulator) Tag() string { return TagStabilizerSimulator }

func (s *StabilizerSimulator) simulatorVariant() {}

// Validate implements variant.Record.
func (s *StabilizerSimulator) Validate() error {
	tag, err := variant.CheckTag(s.Type, TagStabilizerSimulator)
	if err != nil {
		return err
	}
	s.Type = tag

	if s.Seed != nil {
		if err := field.Int64("seed", *s.Seed); err != nil {
			return err
		}
	}
	return field.GreaterThan("angle_threshold", s.AngleThreshold, 0.0)
}

// MatrixProductStateSimulator approximates low-entanglement states as a
// tensor network on Quantinuum's Lean backend.
type MatrixProductStateSimulator struct {
	Type               string   `json:"type"`
	Seed               *int64   `json:"seed,omitempty"`
	Backend            string   `json:"backend"`
	Precision          int      `json:"precision"`
	Chi                *int     `json:"chi,omitempty"`
	TruncationFidelity *float64 `json:"truncation_fidelity,omitempty"`
	ZeroThreshold      *float64 `json:"zero_threshold,omitempty"`
}

// NewMatrixProductStateSimulator returns a MatrixProductStateSimulator
// with defaults applied (CPU backend, 32-bit precision, unbounded chi).
func NewMatrixProductStateSimulator() *MatrixProductStateSimulator {
	return &MatrixProductStateSimulator{
		Type:      TagMatrixProductStateSimulator,
		Backend:   ComputeBackendCPU,
		Precision: 32,
	}
}

// Tag implements variant.Record.
func (s *MatrixProductStateSimulator) Tag() string { return TagMatrixProductStateSimulator }

func (s *MatrixProductStateSimulator) simulatorVariant() {}

// Validate implements variant.Record.
func (s *MatrixProductStateSimulator) Validate() error {
	tag, err := variant.CheckTag(s.Type, TagMatrixProductStateSimulator)
	if err != nil {
		return err
	}
	s.Type = tag

	if s.Seed != nil {
		if err := field.Int64("seed", *s.Seed); err != nil {
			return err
		}
	}
	if err := field.OneOfString("backend", s.Backend, ComputeBackendCPU, ComputeBackendCUDA); err != nil {
		return err
	}
	if err := field.OneOfInt("precision", s.Precision, 32, 64); err != nil {
		return err
	}
	if s.Chi != nil {
		if err := field.Positive("chi", *s.Chi); err != nil {
			return err
		}
	}
	if s.TruncationFidelity != nil {
		if err := field.OpenClosed("truncation_fidelity", *s.TruncationFidelity, 0.0, 1.0); err != nil {
			return err
		}
	}
	if s.ZeroThreshold != nil {
		if err := field.OpenClosed("zero_threshold", *s.ZeroThreshold, 0.0, 1.0); err != nil {
			return err
		}
	}
	return CheckBondDimensionLimits(s.Backend, s.Chi, s.TruncationFidelity)
}

// CheckBondDimensionLimits enforces the cross-field rules shared by the
// tensor-network simulators: chi and truncation_fidelity are mutually
// exclusive, and the CPU compute backend caps chi at MaxCPUBondDimension.
func CheckBondDimensionLimits(backend string, chi *int, truncationFidelity *float64) error {
	if backend == ComputeBackendCPU && chi != nil && *chi > MaxCPUBondDimension {
		return errors.NewCrossFieldViolation(
			"CPU backend does not support chi > 256", "backend", "chi")
	}
	return field.MutuallyExclusive(
		"chi", chi != nil,
		"truncation_fidelity", truncationFidelity != nil)
}

// CoinflipSimulator maintains no quantum state and answers every
// measurement with a biased coin flip.
type CoinflipSimulator struct {
	Type string  `json:"type"`
	Seed *int64  `json:"seed,omitempty"`
	Bias float64 `json:"bias"`
}

// NewCoinflipSimulator returns a CoinflipSimulator with defaults applied.
func NewCoinflipSimulator() *CoinflipSimulator {
	return &CoinflipSimulator{Type: TagCoinflipSimulator, Bias: 0.5}
}

// Tag implements variant.Record.
func (s *CoinflipSimulator) Tag() string { return TagCoinflipSimulator }

func (s *CoinflipSimulator) simulatorVariant() {}

// Validate implements variant.Record.
func (s *CoinflipSimulator) Validate() error {
	tag, err := variant.CheckTag(s.Type, TagCoinflipSimulator)
	if err != nil {
		return err
	}
	s.Type = tag

	if s.Seed != nil {
		if err := field.Int64("seed", *s.Seed); err != nil {
			return err
		}
	}
	return field.InRange("bias", s.Bias, 0.0, 1.0)
}

// ClassicalReplaySimulator replays user-supplied measurement results, one
// inner list per shot. No quantum operations are performed.
type ClassicalReplaySimulator struct {
	Type         string   `json:"type"`
	Seed         *int64   `json:"seed,omitempty"`
	Measurements [][]bool `json:"measurements"`
}

// NewClassicalReplaySimulator returns a ClassicalReplaySimulator with
// defaults applied.
func NewClassicalReplaySimulator() *ClassicalReplaySimulator {
	return &ClassicalReplaySimulator{Type: TagClassicalReplaySimulator, Measurements: [][]bool{}}
}

// Tag implements variant.Record.
func (s *ClassicalReplaySimulator) Tag() string { return TagClassicalReplaySimulator }

func (s *ClassicalReplaySimulator) simulatorVariant() {}

// Validate implements variant.Record.
func (s *ClassicalReplaySimulator) Validate() error {
	tag, err := variant.CheckTag(s.Type, TagClassicalReplaySimulator)
	if err != nil {
		return err
	}
	s.Type = tag

	if s.Seed != nil {
		if err := field.Int64("seed", *s.Seed); err != nil {
			return err
		}
	}
	if s.Measurements == nil {
		s.Measurements = [][]bool{}
	}
	return nil
}
