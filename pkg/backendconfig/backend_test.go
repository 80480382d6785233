package backendconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qompute/qschemas/pkg/errors"
)

func TestAerConfigDefaults(t *testing.T) {
	rec, err := Decode([]byte(`{"type":"AerConfig"}`))
	require.NoError(t, err)

	cfg := rec.(*AerConfig)
	assert.Equal(t, "automatic", cfg.SimulationMethod)
	assert.Equal(t, 40, cfg.NQubits)
	assert.Nil(t, cfg.NoiseModel)
	assert.Nil(t, cfg.Seed)
}

func TestAerConfigRejectsNonPositiveQubits(t *testing.T) {
	_, err := Decode([]byte(`{"type":"AerConfig","n_qubits":0}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
}

func TestAerConfigNestedNoiseModelPath(t *testing.T) {
	// probabilities must not be empty; the violation carries the nested path.
	payload := `{"type":"AerConfig","noise_model":{"errors":[
		{"type":"roerror","probabilities":[]}]}}`
	_, err := Decode([]byte(payload))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestBraketLocalRemoteMatrix(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
	}{
		{"local minimal", `{"type":"BraketConfig","local":true}`, true},
		{"local with device", `{"type":"BraketConfig","local":true,"local_device":"braket_sv"}`, true},
		{"local with remote field", `{"type":"BraketConfig","local":true,"device":"sv1"}`, false},
		{"remote complete", `{"type":"BraketConfig","local":false,"device_type":"quantum-simulator",
			"provider":"amazon","device":"sv1","s3_bucket":"b","s3_folder":"f"}`, true},
		{"remote missing s3_folder", `{"type":"BraketConfig","local":false,"device_type":"quantum-simulator",
			"provider":"amazon","device":"sv1","s3_bucket":"b"}`, false},
		{"remote empty", `{"type":"BraketConfig","local":false}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeCrossField), err)
			}
		})
	}
}

func TestQuantinuumConfigDefaults(t *testing.T) {
	rec, err := Decode([]byte(`{"type":"QuantinuumConfig","device_name":"H2-1"}`))
	require.NoError(t, err)

	cfg := rec.(*QuantinuumConfig)
	assert.Equal(t, "state-vector", cfg.Simulator)
	assert.True(t, cfg.AllowImplicitSwaps)
	assert.True(t, cfg.NoOpt)
	assert.Equal(t, 2000, cfg.MaxBatchCost)
	assert.False(t, cfg.AttemptBatching)
	assert.Nil(t, cfg.MaxCost)
}

func TestQuantinuumConfigRequiresDeviceName(t *testing.T) {
	_, err := Decode([]byte(`{"type":"QuantinuumConfig"}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
}

func TestQuantinuumCompilerOptionsTyping(t *testing.T) {
	tests := []struct {
		name    string
		options string
		ok      bool
	}{
		{"string flag", `{"target":"native"}`, true},
		{"bool flag", `{"verbose":true}`, true},
		{"int flag", `{"level":3}`, true},
		{"float flag", `{"tolerance":0.001}`, true},
		{"float list", `{"angles":[0.1,0.2,0.3]}`, true},
		{"mixed list", `{"angles":[0.1,3,0.3]}`, false},
		{"nested object", `{"sub":{"a":1}}`, false},
		{"int past bounds", `{"big":9223372036854775808}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"type":"QuantinuumConfig","device_name":"H2-1","compiler_options":` + tt.options + `}`
			_, err := Decode([]byte(payload))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			}
		})
	}
}

func TestUnknownKeysIgnoredOnFixedRecords(t *testing.T) {
	// Fixed-shape records ignore unknown keys; only the option bag
	// validates extras.
	rec, err := Decode([]byte(`{"type":"QulacsConfig","future_flag":true}`))
	require.NoError(t, err)
	assert.Equal(t, TagQulacsConfig, rec.Tag())
}

func TestIBMQConfigRequiredFields(t *testing.T) {
	_, err := Decode([]byte(`{"type":"IBMQConfig","backend_name":"ibm_torino"}`))
	require.Error(t, err)

	rec, err := Decode([]byte(`{"type":"IBMQConfig","backend_name":"ibm_torino","instance":"h/g/p"}`))
	require.NoError(t, err)
	assert.Equal(t, "h/g/p", rec.(*IBMQConfig).Instance)
}

func TestQulacsConfigDefaults(t *testing.T) {
	rec, err := Decode([]byte(`{"type":"QulacsConfig"}`))
	require.NoError(t, err)

	cfg := rec.(*QulacsConfig)
	assert.Equal(t, "state_vector", cfg.ResultType)
	assert.False(t, cfg.GPUSim)
}

func TestProjectQConfig(t *testing.T) {
	rec, err := Decode([]byte(`{"type":"ProjectQConfig"}`))
	require.NoError(t, err)
	assert.Equal(t, TagProjectQConfig, TagFor(rec))
}

func TestSeedBounds(t *testing.T) {
	_, err := Decode([]byte(`{"type":"AerConfig","seed":-9223372036854775808}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))

	rec, err := Decode([]byte(`{"type":"AerConfig","seed":9223372036854775807}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), *rec.(*AerConfig).Seed)
}
