package emulator

import (
	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// ErrorModels is the closed family of fault-injection variants.
var ErrorModels = variant.NewFamily("error model", "type")

// Error model tags.
const (
	TagNoErrorModel           = "NoErrorModel"
	TagDepolarizingErrorModel = "DepolarizingErrorModel"
	TagQSystemErrorModel      = "QSystemErrorModel"
)

func init() {
	ErrorModels.MustRegister(TagNoErrorModel, func() variant.Record { return NewNoErrorModel() })
	ErrorModels.MustRegister(TagDepolarizingErrorModel, func() variant.Record { return NewDepolarizingErrorModel() })
	ErrorModels.MustRegister(TagQSystemErrorModel, func() variant.Record { return NewQSystemErrorModel() })
}

// ErrorModel is one variant of the error-model family.
type ErrorModel interface {
	variant.Record
	errorModelVariant()
}

// ErrorModelSlot holds exactly one error-model variant by value inside a
// parent config.
type ErrorModelSlot struct {
	ErrorModel
}

// UnmarshalJSON dispatches the nested payload through the error-model family.
func (s *ErrorModelSlot) UnmarshalJSON(data []byte) error {
	rec, err := ErrorModels.Decode(data)
	if err != nil {
		return nestedErr(err, "error_model")
	}
	em, ok := rec.(ErrorModel)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "error_model: not an error-model variant")
	}
	s.ErrorModel = em
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s ErrorModelSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.ErrorModel)
}

// NoErrorModel executes every operation as-is, without injecting faults.
type NoErrorModel struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
}

// NewNoErrorModel returns a NoErrorModel with defaults applied.
func NewNoErrorModel() *NoErrorModel {
	return &NoErrorModel{Type: TagNoErrorModel}
}

// Tag implements variant.Record.
func (m *NoErrorModel) Tag() string { return TagNoErrorModel }

func (m *NoErrorModel) errorModelVariant() {}

// Validate implements variant.Record.
func (m *NoErrorModel) Validate() error {
	tag, err := variant.CheckTag(m.Type, TagNoErrorModel)
	if err != nil {
		return err
	}
	m.Type = tag

	if m.Seed != nil {
		return field.Int64("seed", *m.Seed)
	}
	return nil
}

// DepolarizingErrorModel injects depolarizing noise with independent
// probabilities per operation kind.
type DepolarizingErrorModel struct {
	Type  string  `json:"type"`
	Seed  *int64  `json:"seed,omitempty"`
	P1Q   float64 `json:"p_1q"`
	P2Q   float64 `json:"p_2q"`
	PMeas float64 `json:"p_meas"`
	PInit float64 `json:"p_init"`
}

// NewDepolarizingErrorModel returns a DepolarizingErrorModel with defaults
// applied (all probabilities zero).
func NewDepolarizingErrorModel() *DepolarizingErrorModel {
	return &DepolarizingErrorModel{Type: TagDepolarizingErrorModel}
}

// Tag implements variant.Record.
func (m *DepolarizingErrorModel) Tag() string { return TagDepolarizingErrorModel }

func (m *DepolarizingErrorModel) errorModelVariant() {}

// Validate implements variant.Record.
func (m *DepolarizingErrorModel) Validate() error {
	tag, err := variant.CheckTag(m.Type, TagDepolarizingErrorModel)
	if err != nil {
		return err
	}
	m.Type = tag

	if m.Seed != nil {
		if err := field.Int64("seed", *m.Seed); err != nil {
			return err
		}
	}
	probabilities := []struct {
		name  string
		value float64
	}{
		{"p_1q", m.P1Q},
		{"p_2q", m.P2Q},
		{"p_meas", m.PMeas},
		{"p_init", m.PInit},
	}
	for _, p := range probabilities {
		if err := field.InRange(p.name, p.value, 0.0, 1.0); err != nil {
			return err
		}
	}
	return nil
}

// QSystemErrorModel replays the measured error characteristics of a
// specific Quantinuum system.
type QSystemErrorModel struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
	Name string `json:"name"`
}

// NewQSystemErrorModel returns a QSystemErrorModel with defaults applied.
func NewQSystemErrorModel() *QSystemErrorModel {
	return &QSystemErrorModel{Type: TagQSystemErrorModel, Name: "alpha"}
}

// Tag implements variant.Record.
func (m *QSystemErrorModel) Tag() string { return TagQSystemErrorModel }

func (m *QSystemErrorModel) errorModelVariant() {}

// Validate implements variant.Record.
func (m *QSystemErrorModel) Validate() error {
	tag, err := variant.CheckTag(m.Type, TagQSystemErrorModel)
	if err != nil {
		return err
	}
	m.Type = tag

	if m.Seed != nil {
		if err := field.Int64("seed", *m.Seed); err != nil {
			return err
		}
	}
	return field.NotEmpty("name", m.Name)
}
