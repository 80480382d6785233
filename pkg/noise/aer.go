// Package noise defines the fault-injection payloads that backend configs
// carry: validation models for qiskit-aer noise models (themselves two
// nested tagged unions) and the user-supplied error parameters for
// emulation of Quantinuum Systems hardware.
package noise

import (
	stderrors "errors"
	"strings"

	"github.com/google/uuid"

	"github.com/qompute/qschemas/pkg/backendinfo"
	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// Instructions is the closed family of qiskit instruction variants,
// dispatched on the "name" key.
var Instructions = variant.NewFamily("qiskit instruction", "name")

// Instruction names without parameters.
var basicInstructionNames = []string{"id", "x", "y", "z", "reset"}

// Parameterized instruction names.
const (
	NamePauliInstruction = "pauli"
	NameKrausInstruction = "kraus"
)

// AerErrors is the closed family of qiskit-aer error variants, dispatched
// on the "type" key.
var AerErrors = variant.NewFamily("aer error", "type")

// Aer error tags.
const (
	TagAerQuantumError = "qerror"
	TagAerReadoutError = "roerror"
)

func init() {
	for _, name := range basicInstructionNames {
		name := name
		Instructions.MustRegister(name, func() variant.Record {
			return &QiskitBasicInstruction{Name: name}
		})
	}
	Instructions.MustRegister(NamePauliInstruction, func() variant.Record {
		return &QiskitPauliInstruction{Name: NamePauliInstruction}
	})
	Instructions.MustRegister(NameKrausInstruction, func() variant.Record {
		return &QiskitKrausInstruction{Name: NameKrausInstruction}
	})

	AerErrors.MustRegister(TagAerQuantumError, func() variant.Record { return NewAerQuantumError() })
	AerErrors.MustRegister(TagAerReadoutError, func() variant.Record { return NewAerReadoutError() })
}

// Instruction is one variant of the qiskit instruction family.
type Instruction interface {
	variant.Record
	instructionVariant()
}

// InstructionSlot holds exactly one instruction variant by value.
type InstructionSlot struct {
	Instruction
}

// UnmarshalJSON dispatches the nested payload through the instruction family.
func (s *InstructionSlot) UnmarshalJSON(data []byte) error {
	rec, err := Instructions.Decode(data)
	if err != nil {
		return nestedErr(err, "instructions")
	}
	in, ok := rec.(Instruction)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "instructions: not an instruction variant")
	}
	s.Instruction = in
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s InstructionSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.Instruction)
}

func nestedErr(err error, fieldName string) error {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.WithField(fieldName)
	}
	return err
}

// QiskitBasicInstruction is a qiskit instruction without parameters. One
// struct serves the whole unparameterized name set.
type QiskitBasicInstruction struct {
	Name   string `json:"name"`
	Qubits []int  `json:"qubits"`
}

// Tag implements variant.Record.
func (i *QiskitBasicInstruction) Tag() string { return i.Name }

func (i *QiskitBasicInstruction) instructionVariant() {}

// Validate implements variant.Record.
func (i *QiskitBasicInstruction) Validate() error {
	return field.OneOfString("name", i.Name, basicInstructionNames...)
}

// QiskitPauliInstruction is a qiskit pauli-string instruction.
type QiskitPauliInstruction struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Qubits []int    `json:"qubits"`
}

// Tag implements variant.Record.
func (i *QiskitPauliInstruction) Tag() string { return NamePauliInstruction }

func (i *QiskitPauliInstruction) instructionVariant() {}

// Validate implements variant.Record.
func (i *QiskitPauliInstruction) Validate() error {
	name, err := variant.CheckTag(i.Name, NamePauliInstruction)
	if err != nil {
		return err
	}
	i.Name = name
	return nil
}

// QiskitKrausInstruction is a qiskit Kraus-operator instruction. Params
// holds a list of matrices of complex numbers, each complex number a
// two-element float list.
type QiskitKrausInstruction struct {
	Name   string          `json:"name"`
	Params [][][][]float64 `json:"params"`
	Qubits []int           `json:"qubits"`
}

// Tag implements variant.Record.
func (i *QiskitKrausInstruction) Tag() string { return NameKrausInstruction }

func (i *QiskitKrausInstruction) instructionVariant() {}

// Validate implements variant.Record.
func (i *QiskitKrausInstruction) Validate() error {
	name, err := variant.CheckTag(i.Name, NameKrausInstruction)
	if err != nil {
		return err
	}
	i.Name = name
	return nil
}

// AerError is one variant of the aer error family.
type AerError interface {
	variant.Record
	aerErrorVariant()
}

// AerErrorSlot holds exactly one aer error variant by value.
type AerErrorSlot struct {
	AerError
}

// UnmarshalJSON dispatches the nested payload through the aer error family.
func (s *AerErrorSlot) UnmarshalJSON(data []byte) error {
	rec, err := AerErrors.Decode(data)
	if err != nil {
		return nestedErr(err, "errors")
	}
	ae, ok := rec.(AerError)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "errors: not an aer error variant")
	}
	s.AerError = ae
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s AerErrorSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.AerError)
}

// AerQuantumError is the stored form of qiskit-aer's QuantumError.
type AerQuantumError struct {
	Type          string              `json:"type"`
	ID            string              `json:"id"`
	Operations    []string            `json:"operations"`
	Instructions  [][]InstructionSlot `json:"instructions"`
	Probabilities []float64           `json:"probabilities"`
	GateQubits    [][]int             `json:"gate_qubits"`
}

// NewAerQuantumError returns an AerQuantumError with defaults applied,
// including a fresh v4 identifier.
func NewAerQuantumError() *AerQuantumError {
	return &AerQuantumError{
		Type:       TagAerQuantumError,
		ID:         newHexID(),
		Operations: []string{},
	}
}

// Tag implements variant.Record.
func (e *AerQuantumError) Tag() string { return TagAerQuantumError }

func (e *AerQuantumError) aerErrorVariant() {}

// Validate implements variant.Record.
func (e *AerQuantumError) Validate() error {
	tag, err := variant.CheckTag(e.Type, TagAerQuantumError)
	if err != nil {
		return err
	}
	e.Type = tag

	id, err := checkHexID(e.ID)
	if err != nil {
		return err
	}
	e.ID = id

	if e.Operations == nil {
		e.Operations = []string{}
	}
	return field.MinItems("probabilities", len(e.Probabilities), 1)
}

// AerReadoutError is the stored form of qiskit-aer's ReadoutError.
type AerReadoutError struct {
	Type          string      `json:"type"`
	Operations    []string    `json:"operations"`
	Probabilities [][]float64 `json:"probabilities"`
	GateQubits    [][]int     `json:"gate_qubits"`
}

// NewAerReadoutError returns an AerReadoutError with defaults applied.
func NewAerReadoutError() *AerReadoutError {
	return &AerReadoutError{
		Type:       TagAerReadoutError,
		Operations: []string{"measure"},
	}
}

// Tag implements variant.Record.
func (e *AerReadoutError) Tag() string { return TagAerReadoutError }

func (e *AerReadoutError) aerErrorVariant() {}

// Validate implements variant.Record.
func (e *AerReadoutError) Validate() error {
	tag, err := variant.CheckTag(e.Type, TagAerReadoutError)
	if err != nil {
		return err
	}
	e.Type = tag

	if e.Operations == nil {
		e.Operations = []string{"measure"}
	}
	return field.MinItems("probabilities", len(e.Probabilities), 1)
}

// newHexID generates a v4 UUID in hex form (no hyphens).
func newHexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// checkHexID validates an identifier as a v4 UUID and normalizes it to
// hex form.
func checkHexID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil || u.Version() != 4 {
		return "", errors.NewConstraintViolation("id", "must be a v4 UUID in hex format", id)
	}
	return strings.ReplaceAll(u.String(), "-", ""), nil
}

// AerNoiseModel is the stored form of qiskit-aer's NoiseModel.
type AerNoiseModel struct {
	Errors []AerErrorSlot `json:"errors"`
}

// Validate checks the noise model's error records. Slots decoded from the
// wire are already validated; this covers programmatic construction.
func (m *AerNoiseModel) Validate() error {
	for i := range m.Errors {
		if m.Errors[i].AerError == nil {
			return errors.NewConstraintViolation("errors", "must not contain empty entries", i)
		}
		if err := m.Errors[i].AerError.Validate(); err != nil {
			return nestedErr(err, "errors")
		}
	}
	return nil
}

// CouplingStrength is a directed qubit pair with an interaction strength.
type CouplingStrength struct {
	From  backendinfo.Register `json:"from"`
	To    backendinfo.Register `json:"to"`
	Value float64              `json:"value"`
}

// RegisterValue attaches a value to a single register.
type RegisterValue struct {
	Register backendinfo.Register `json:"register"`
	Value    float64              `json:"value"`
}

// InducedPhase records the phase error induced on a spectator register by
// a two-qubit gate on a coupled pair.
type InducedPhase struct {
	From   backendinfo.Register `json:"from"`
	To     backendinfo.Register `json:"to"`
	Target backendinfo.Register `json:"target"`
	Value  float64              `json:"value"`
}

// NonMarkovianNoise records a register's non-Markovian noise parameters.
type NonMarkovianNoise struct {
	Register backendinfo.Register `json:"register"`
	Rate     float64              `json:"rate"`
	Strength float64              `json:"strength"`
}

// GateTime records the duration of a gate on a specific register tuple.
type GateTime struct {
	Gate      string                 `json:"gate"`
	Registers []backendinfo.Register `json:"registers"`
	Time      float64                `json:"time"`
}

// CrosstalkParams stores the parameters for modelling crosstalk noise,
// based on pytket-qiskit's CrosstalkParams model.
type CrosstalkParams struct {
	ZZCrosstalks           []CouplingStrength  `json:"zz_crosstalks"`
	SingleQPhaseErrors     []RegisterValue     `json:"single_q_phase_errors"`
	TwoQInducedPhaseErrors []InducedPhase      `json:"two_q_induced_phase_errors"`
	NonMarkovianNoise      []NonMarkovianNoise `json:"non_markovian_noise"`
	VirtualZ               bool                `json:"virtual_z"`
	N                      float64             `json:"N"`
	GateTimes              []GateTime          `json:"gate_times"`
	PhaseDampingError      []RegisterValue     `json:"phase_damping_error"`
	AmplitudeDampingError  []RegisterValue     `json:"amplitude_damping_error"`
}
