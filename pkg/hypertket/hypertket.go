// Package hypertket defines the configuration models for HyperTKET
// compilation: the qubit-reuse ordering strategies (a closed tagged union
// dispatched on the "ordering_method" key), the qubit-reuse pass config,
// and the top-level compilation config.
package hypertket

import (
	stderrors "errors"

	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

// Orderings is the closed family of qubit-reuse ordering strategies.
var Orderings = variant.NewFamily("ordering config", "ordering_method")

// Ordering tags.
const (
	TagBruteForceOrder                 = "BruteForceOrder"
	TagConstrainedOptOrder             = "ConstrainedOptOrder"
	TagLocalGreedyOrder                = "LocalGreedyOrder"
	TagLocalGreedyFirstNodeSearchOrder = "LocalGreedyFirstNodeSearchOrder"
	TagCustomOrder                     = "CustomOrder"
	TagDefaultOrder                    = "DefaultOrder"
)

func init() {
	Orderings.MustRegister(TagBruteForceOrder, func() variant.Record { return NewBruteForceOrderConfig() })
	Orderings.MustRegister(TagConstrainedOptOrder, func() variant.Record { return NewConstrainedOptOrderConfig() })
	Orderings.MustRegister(TagLocalGreedyOrder, func() variant.Record { return NewLocalGreedyOrderConfig() })
	Orderings.MustRegister(TagLocalGreedyFirstNodeSearchOrder, func() variant.Record { return NewLocalGreedyFirstNodeSearchOrderConfig() })
	Orderings.MustRegister(TagCustomOrder, func() variant.Record { return NewCustomOrderConfig() })
	Orderings.MustRegister(TagDefaultOrder, func() variant.Record { return NewDefaultOrderConfig() })
}

// Ordering is one variant of the ordering family.
type Ordering interface {
	variant.Record
	orderingVariant()
}

// OrderingSlot holds exactly one ordering variant by value inside the
// qubit-reuse config.
type OrderingSlot struct {
	Ordering
}

// UnmarshalJSON dispatches the nested payload through the ordering family.
func (s *OrderingSlot) UnmarshalJSON(data []byte) error {
	rec, err := Orderings.Decode(data)
	if err != nil {
		var structured *errors.Error
		if stderrors.As(err, &structured) {
			return structured.WithField("ordering_config")
		}
		return err
	}
	ord, ok := rec.(Ordering)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "ordering_config: not an ordering variant")
	}
	s.Ordering = ord
	return nil
}

// MarshalJSON emits the held variant's canonical form.
func (s OrderingSlot) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(s.Ordering)
}

// BruteForceOrderConfig searches every qubit ordering exhaustively.
type BruteForceOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
}

// NewBruteForceOrderConfig returns a BruteForceOrderConfig.
func NewBruteForceOrderConfig() *BruteForceOrderConfig {
	return &BruteForceOrderConfig{OrderingMethod: TagBruteForceOrder}
}

// Tag implements variant.Record.
func (c *BruteForceOrderConfig) Tag() string { return TagBruteForceOrder }

func (c *BruteForceOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *BruteForceOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagBruteForceOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag
	return nil
}

// ConstrainedOptOrderConfig finds a qubit ordering with a constrained
// optimization solver.
type ConstrainedOptOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
	TimeLimit      int    `json:"time_limit"`
	NThreads       int    `json:"n_threads"`
	Hint           []int  `json:"hint,omitempty"`
}

// NewConstrainedOptOrderConfig returns a ConstrainedOptOrderConfig with
// defaults applied.
func NewConstrainedOptOrderConfig() *ConstrainedOptOrderConfig {
	return &ConstrainedOptOrderConfig{
		OrderingMethod: TagConstrainedOptOrder,
		TimeLimit:      600,
		NThreads:       1,
	}
}

// Tag implements variant.Record.
func (c *ConstrainedOptOrderConfig) Tag() string { return TagConstrainedOptOrder }

func (c *ConstrainedOptOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *ConstrainedOptOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagConstrainedOptOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag

	if err := field.NonNegative("time_limit", c.TimeLimit); err != nil {
		return err
	}
	return field.AtLeast("n_threads", c.NThreads, 1)
}

// LocalGreedyOrderConfig orders qubits with a local greedy heuristic.
type LocalGreedyOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
}

// NewLocalGreedyOrderConfig returns a LocalGreedyOrderConfig.
func NewLocalGreedyOrderConfig() *LocalGreedyOrderConfig {
	return &LocalGreedyOrderConfig{OrderingMethod: TagLocalGreedyOrder}
}

// Tag implements variant.Record.
func (c *LocalGreedyOrderConfig) Tag() string { return TagLocalGreedyOrder }

func (c *LocalGreedyOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *LocalGreedyOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagLocalGreedyOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag
	return nil
}

// LocalGreedyFirstNodeSearchOrderConfig extends the local greedy heuristic
// with a search over the first node.
type LocalGreedyFirstNodeSearchOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
}

// NewLocalGreedyFirstNodeSearchOrderConfig returns a
// LocalGreedyFirstNodeSearchOrderConfig.
func NewLocalGreedyFirstNodeSearchOrderConfig() *LocalGreedyFirstNodeSearchOrderConfig {
	return &LocalGreedyFirstNodeSearchOrderConfig{OrderingMethod: TagLocalGreedyFirstNodeSearchOrder}
}

// Tag implements variant.Record.
func (c *LocalGreedyFirstNodeSearchOrderConfig) Tag() string {
	return TagLocalGreedyFirstNodeSearchOrder
}

func (c *LocalGreedyFirstNodeSearchOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *LocalGreedyFirstNodeSearchOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagLocalGreedyFirstNodeSearchOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag
	return nil
}

// CustomOrderConfig applies a caller-supplied qubit order.
type CustomOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
	Order          []int  `json:"order"`
}

// NewCustomOrderConfig returns a CustomOrderConfig.
func NewCustomOrderConfig() *CustomOrderConfig {
	return &CustomOrderConfig{OrderingMethod: TagCustomOrder}
}

// Tag implements variant.Record.
func (c *CustomOrderConfig) Tag() string { return TagCustomOrder }

func (c *CustomOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *CustomOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagCustomOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag
	return field.MinItems("order", len(c.Order), 1)
}

// DefaultOrderConfig leaves ordering to the compiler.
type DefaultOrderConfig struct {
	OrderingMethod string `json:"ordering_method"`
}

// NewDefaultOrderConfig returns a DefaultOrderConfig.
func NewDefaultOrderConfig() *DefaultOrderConfig {
	return &DefaultOrderConfig{OrderingMethod: TagDefaultOrder}
}

// Tag implements variant.Record.
func (c *DefaultOrderConfig) Tag() string { return TagDefaultOrder }

func (c *DefaultOrderConfig) orderingVariant() {}

// Validate implements variant.Record.
func (c *DefaultOrderConfig) Validate() error {
	tag, err := variant.CheckTag(c.OrderingMethod, TagDefaultOrder)
	if err != nil {
		return err
	}
	c.OrderingMethod = tag
	return nil
}

// DualStrat selects the strategy for dual circuit compilation.
type DualStrat int

// Dual circuit compilation strategies.
const (
	DualStratSingle DualStrat = 0
	DualStratDual   DualStrat = 1
	DualStratAuto   DualStrat = 2
)

// RewriteSearchConfig configures compilation passes that search for a
// circuit rewrite.
type RewriteSearchConfig struct {
	EnableRewriteSearch bool `json:"enable_rewrite_search"`
}

// NewRewriteSearchConfig returns a RewriteSearchConfig with defaults
// applied (rewrite search enabled).
func NewRewriteSearchConfig() RewriteSearchConfig {
	return RewriteSearchConfig{EnableRewriteSearch: true}
}

// QubitReuseConfig configures the qubit reuse compilation pass.
type QubitReuseConfig struct {
	EnableQubitReuse    bool         `json:"enable_qubit_reuse"`
	OrderingConfig      OrderingSlot `json:"ordering_config"`
	MinQubits           *int         `json:"min_qubits,omitempty"`
	DualCircuitStrategy *DualStrat   `json:"dual_circuit_strategy,omitempty"`
}

// NewQubitReuseConfig returns a QubitReuseConfig with defaults applied.
func NewQubitReuseConfig() *QubitReuseConfig {
	return &QubitReuseConfig{
		OrderingConfig: OrderingSlot{Ordering: NewDefaultOrderConfig()},
	}
}

// Validate checks the qubit-reuse pass parameters.
func (c *QubitReuseConfig) Validate() error {
	if c.OrderingConfig.Ordering == nil {
		return errors.NewConstraintViolation("ordering_config", "must be set", nil)
	}
	if c.MinQubits != nil {
		if err := field.NonNegative("min_qubits", *c.MinQubits); err != nil {
			return err
		}
	}
	if c.DualCircuitStrategy != nil {
		if err := field.OneOfInt("dual_circuit_strategy", int(*c.DualCircuitStrategy),
			int(DualStratSingle), int(DualStratDual), int(DualStratAuto)); err != nil {
			return err
		}
	}
	return nil
}

// HyperTketConfig is the top-level configuration for HyperTKET compilation.
type HyperTketConfig struct {
	RewriteSearchConfig RewriteSearchConfig `json:"rewrite_search_config"`
	QubitReuseConfig    *QubitReuseConfig   `json:"qubit_reuse_config,omitempty"`
}

// NewHyperTketConfig returns a HyperTketConfig with defaults applied.
func NewHyperTketConfig() *HyperTketConfig {
	return &HyperTketConfig{RewriteSearchConfig: NewRewriteSearchConfig()}
}

// Validate checks the compilation configuration.
func (c *HyperTketConfig) Validate() error {
	if c.QubitReuseConfig != nil {
		var structured *errors.Error
		if err := c.QubitReuseConfig.Validate(); err != nil {
			if stderrors.As(err, &structured) {
				return structured.WithField("qubit_reuse_config")
			}
			return err
		}
	}
	return nil
}
