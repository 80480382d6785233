package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/variant"
)

func TestRuntimeFamilyDispatch(t *testing.T) {
	rec, err := Runtimes.Decode([]byte(`{"type":"SimpleRuntime"}`))
	require.NoError(t, err)
	assert.IsType(t, &SimpleRuntime{}, rec)

	rec, err = Runtimes.Decode([]byte(`{"type":"HeliosRuntime","seed":42}`))
	require.NoError(t, err)
	rt := rec.(*HeliosRuntime)
	require.NotNil(t, rt.Seed)
	assert.Equal(t, int64(42), *rt.Seed)
}

func TestErrorModelProbabilityBounds(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
	}{
		{"all zero", `{"type":"DepolarizingErrorModel"}`, true},
		{"boundary one", `{"type":"DepolarizingErrorModel","p_1q":1.0}`, true},
		{"p_1q above", `{"type":"DepolarizingErrorModel","p_1q":1.0001}`, false},
		{"p_meas below", `{"type":"DepolarizingErrorModel","p_meas":-0.0001}`, false},
		{"p_init above", `{"type":"DepolarizingErrorModel","p_init":2}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ErrorModels.Decode([]byte(tt.payload))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
			}
		})
	}
}

func TestQSystemErrorModelDefaults(t *testing.T) {
	rec, err := ErrorModels.Decode([]byte(`{"type":"QSystemErrorModel"}`))
	require.NoError(t, err)
	assert.Equal(t, "alpha", rec.(*QSystemErrorModel).Name)

	_, err = ErrorModels.Decode([]byte(`{"type":"QSystemErrorModel","name":""}`))
	assert.Error(t, err)
}

func TestStabilizerAngleThreshold(t *testing.T) {
	rec, err := Simulators.Decode([]byte(`{"type":"StabilizerSimulator"}`))
	require.NoError(t, err)
	assert.Equal(t, 1e-8, rec.(*StabilizerSimulator).AngleThreshold)

	_, err = Simulators.Decode([]byte(`{"type":"StabilizerSimulator","angle_threshold":0}`))
	assert.Error(t, err)
}

func TestMatrixProductStateDefaults(t *testing.T) {
	rec, err := Simulators.Decode([]byte(`{"type":"MatrixProductStateSimulator"}`))
	require.NoError(t, err)

	s := rec.(*MatrixProductStateSimulator)
	assert.Equal(t, ComputeBackendCPU, s.Backend)
	assert.Equal(t, 32, s.Precision)
	assert.Nil(t, s.Chi)
}

func TestMatrixProductStateCrossFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
		errType errors.ErrorType
	}{
		{"chi alone", `{"type":"MatrixProductStateSimulator","chi":16}`, true, ""},
		{"fidelity alone", `{"type":"MatrixProductStateSimulator","truncation_fidelity":0.9}`, true, ""},
		{"both set", `{"type":"MatrixProductStateSimulator","chi":16,"truncation_fidelity":0.9}`, false, errors.ErrorTypeCrossField},
		{"cpu chi at limit", `{"type":"MatrixProductStateSimulator","chi":256}`, true, ""},
		{"cpu chi over limit", `{"type":"MatrixProductStateSimulator","chi":257}`, false, errors.ErrorTypeCrossField},
		{"cuda chi over cpu limit", `{"type":"MatrixProductStateSimulator","backend":"cuda","chi":512}`, true, ""},
		{"chi zero", `{"type":"MatrixProductStateSimulator","chi":0}`, false, errors.ErrorTypeConstraint},
		{"fidelity zero", `{"type":"MatrixProductStateSimulator","truncation_fidelity":0}`, false, errors.ErrorTypeConstraint},
		{"bad backend", `{"type":"MatrixProductStateSimulator","backend":"tpu"}`, false, errors.ErrorTypeConstraint},
		{"bad precision", `{"type":"MatrixProductStateSimulator","precision":16}`, false, errors.ErrorTypeConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulators.Decode([]byte(tt.payload))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.errType), err)
			}
		})
	}
}

func TestCoinflipBias(t *testing.T) {
	rec, err := Simulators.Decode([]byte(`{"type":"CoinflipSimulator"}`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, rec.(*CoinflipSimulator).Bias)

	_, err = Simulators.Decode([]byte(`{"type":"CoinflipSimulator","bias":1.0001}`))
	assert.Error(t, err)
}

func TestClassicalReplayMeasurementsNormalized(t *testing.T) {
	rec, err := Simulators.Decode([]byte(`{"type":"ClassicalReplaySimulator"}`))
	require.NoError(t, err)
	assert.NotNil(t, rec.(*ClassicalReplaySimulator).Measurements)

	rec, err = Simulators.Decode([]byte(`{"type":"ClassicalReplaySimulator","measurements":[[true,false]]}`))
	require.NoError(t, err)
	assert.Equal(t, [][]bool{{true, false}}, rec.(*ClassicalReplaySimulator).Measurements)
}

func TestSlotRoundTrip(t *testing.T) {
	payloads := []string{
		`{"type":"SimpleRuntime"}`,
		`{"type":"HeliosRuntime","seed":7}`,
		`{"type":"NoErrorModel"}`,
		`{"type":"DepolarizingErrorModel","p_1q":0.001,"p_2q":0.01,"p_meas":0.002,"p_init":0.003}`,
		`{"type":"StatevectorSimulator","seed":1}`,
		`{"type":"MatrixProductStateSimulator","backend":"cuda","precision":64,"chi":512}`,
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			var family *variant.Family
			switch {
			case Runtimes.Has(tagOf(t, payload)):
				family = Runtimes
			case ErrorModels.Has(tagOf(t, payload)):
				family = ErrorModels
			default:
				family = Simulators
			}

			rec, err := family.Decode([]byte(payload))
			require.NoError(t, err)

			data, err := variant.Encode(rec)
			require.NoError(t, err)

			again, err := family.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, rec, again)
		})
	}
}

func tagOf(t *testing.T, payload string) string {
	t.Helper()
	obj := map[string]interface{}{}
	require.NoError(t, jsonx.Unmarshal([]byte(payload), &obj))
	tag, _ := obj["type"].(string)
	return tag
}

func TestWrongTagForVariantRejected(t *testing.T) {
	// A payload can never claim one tag and validate as another.
	rec := NewCoinflipSimulator()
	rec.Type = "StatevectorSimulator"
	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
}

func TestSeedHelper(t *testing.T) {
	seed := int64(5)
	assert.Nil(t, Seed(NewSimpleRuntime()))
	assert.Equal(t, &seed, Seed(&StabilizerSimulator{Type: TagStabilizerSimulator, Seed: &seed, AngleThreshold: 1e-8}))
}
