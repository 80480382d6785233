package noise

import (
	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

// FlipProbability is a measurement bit-flip probability that is either a
// single rate applied to both measurement outcomes or a pair of rates, the
// first applied when a 0 is measured and the second when a 1 is measured.
// The wire form mirrors whichever shape was supplied: a bare number or a
// two-element array.
type FlipProbability struct {
	Zero float64
	One  float64
	Pair bool
}

// SymmetricFlip returns a FlipProbability applying the same rate to both
// measurement outcomes.
func SymmetricFlip(p float64) FlipProbability {
	return FlipProbability{Zero: p, One: p}
}

// AsymmetricFlip returns a FlipProbability with independent rates for 0 and
// 1 measurement outcomes.
func AsymmetricFlip(p0, p1 float64) FlipProbability {
	return FlipProbability{Zero: p0, One: p1, Pair: true}
}

// UnmarshalJSON accepts either a bare number or a two-element array.
func (f *FlipProbability) UnmarshalJSON(data []byte) error {
	var single float64
	if err := jsonx.Unmarshal(data, &single); err == nil {
		*f = SymmetricFlip(single)
		return nil
	}
	var pair []float64
	if err := jsonx.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return errors.NewConstraintViolation(
			"p_meas", "must be a number or a pair of numbers", string(data))
	}
	*f = AsymmetricFlip(pair[0], pair[1])
	return nil
}

// MarshalJSON emits the shape the value was built with.
func (f FlipProbability) MarshalJSON() ([]byte, error) {
	if f.Pair {
		return jsonx.Marshal([2]float64{f.Zero, f.One})
	}
	return jsonx.Marshal(f.Zero)
}

// UserErrorParams carries user-provided error values that override machine
// values for emulation of Quantinuum Systems hardware. Every field is
// optional; absent fields leave the machine value in place. See the
// Quantinuum Systems documentation for the meaning of each parameter.
type UserErrorParams struct {
	// Physical noise.
	P1              *float64         `json:"p1,omitempty"`
	P2              *float64         `json:"p2,omitempty"`
	PMeas           *FlipProbability `json:"p_meas,omitempty"`
	PInit           *float64         `json:"p_init,omitempty"`
	PCrosstalkMeas  *float64         `json:"p_crosstalk_meas,omitempty"`
	PCrosstalkInit  *float64         `json:"p_crosstalk_init,omitempty"`
	P1EmissionRatio *float64         `json:"p1_emission_ratio,omitempty"`
	P2EmissionRatio *float64         `json:"p2_emission_ratio,omitempty"`

	// Dephasing noise.
	QuadraticDephasingRate     *float64 `json:"quadratic_dephasing_rate,omitempty"`
	LinearDephasingRate        *float64 `json:"linear_dephasing_rate,omitempty"`
	CoherentToIncoherentFactor *float64 `json:"coherent_to_incoherent_factor,omitempty"`
	CoherentDephasing          *bool    `json:"coherent_dephasing,omitempty"`
	TransportDephasing         *bool    `json:"transport_dephasing,omitempty"`
	IdleDephasing              *bool    `json:"idle_dephasing,omitempty"`

	// Arbitrary-angle noise scaling.
	PrzzA     *float64 `json:"przz_a,omitempty"`
	PrzzB     *float64 `json:"przz_b,omitempty"`
	PrzzC     *float64 `json:"przz_c,omitempty"`
	PrzzD     *float64 `json:"przz_d,omitempty"`
	PrzzPower *float64 `json:"przz_power,omitempty"`

	// Linear scaling of machine rates.
	Scale          *float64 `json:"scale,omitempty"`
	P1Scale        *float64 `json:"p1_scale,omitempty"`
	P2Scale        *float64 `json:"p2_scale,omitempty"`
	MeasScale      *float64 `json:"meas_scale,omitempty"`
	InitScale      *float64 `json:"init_scale,omitempty"`
	MemoryScale    *float64 `json:"memory_scale,omitempty"`
	EmissionScale  *float64 `json:"emission_scale,omitempty"`
	CrosstalkScale *float64 `json:"crosstalk_scale,omitempty"`
	LeakageScale   *float64 `json:"leakage_scale,omitempty"`
}
