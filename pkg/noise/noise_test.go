package noise

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qompute/qschemas/pkg/backendinfo"
	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

func register(name string, index ...int) backendinfo.Register {
	return backendinfo.Register{Name: name, Index: index}
}

func TestFlipProbabilityShapes(t *testing.T) {
	var single FlipProbability
	require.NoError(t, jsonx.Unmarshal([]byte(`0.01`), &single))
	assert.Equal(t, SymmetricFlip(0.01), single)

	data, err := jsonx.Marshal(single)
	require.NoError(t, err)
	assert.Equal(t, `0.01`, string(data))

	var pair FlipProbability
	require.NoError(t, jsonx.Unmarshal([]byte(`[0.01,0.02]`), &pair))
	assert.Equal(t, AsymmetricFlip(0.01, 0.02), pair)

	data, err = jsonx.Marshal(pair)
	require.NoError(t, err)
	assert.Equal(t, `[0.01,0.02]`, string(data))
}

func TestFlipProbabilityRejectsBadShapes(t *testing.T) {
	for _, payload := range []string{`[0.01]`, `[0.01,0.02,0.03]`, `"high"`, `{}`} {
		var fp FlipProbability
		err := jsonx.Unmarshal([]byte(payload), &fp)
		assert.Error(t, err, payload)
	}
}

func TestUserErrorParamsRoundTrip(t *testing.T) {
	payload := []byte(`{"p1":0.0001,"p_meas":[0.001,0.002],"transport_dephasing":true,"scale":1.5}`)

	var params UserErrorParams
	require.NoError(t, jsonx.Unmarshal(payload, &params))

	require.NotNil(t, params.P1)
	assert.Equal(t, 0.0001, *params.P1)
	require.NotNil(t, params.PMeas)
	assert.True(t, params.PMeas.Pair)
	assert.Nil(t, params.P2)

	data, err := jsonx.Marshal(&params)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "p2")
	assert.Contains(t, string(data), `"p_meas":[0.001,0.002]`)
}

func TestInstructionFamilyDispatch(t *testing.T) {
	for _, name := range []string{"id", "x", "y", "z", "reset"} {
		rec, err := Instructions.Decode([]byte(`{"name":"` + name + `","qubits":[0]}`))
		require.NoError(t, err, name)
		assert.Equal(t, name, rec.Tag())
	}

	rec, err := Instructions.Decode([]byte(`{"name":"pauli","params":["XX"],"qubits":[0,1]}`))
	require.NoError(t, err)
	assert.IsType(t, &QiskitPauliInstruction{}, rec)

	// Parameter lists may be empty.
	_, err = Instructions.Decode([]byte(`{"name":"pauli","params":[],"qubits":[0]}`))
	assert.NoError(t, err)

	_, err = Instructions.Decode([]byte(`{"name":"kraus","params":[],"qubits":[0]}`))
	assert.NoError(t, err)

	_, err = Instructions.Decode([]byte(`{"name":"cx","qubits":[0,1]}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownVariant))
}

func TestKrausInstruction(t *testing.T) {
	payload := `{"name":"kraus","params":[[[[1,0],[0,0]],[[0,0],[1,0]]]],"qubits":[0]}`
	rec, err := Instructions.Decode([]byte(payload))
	require.NoError(t, err)
	assert.Len(t, rec.(*QiskitKrausInstruction).Params, 1)
}

func TestAerQuantumErrorIDs(t *testing.T) {
	fresh := NewAerQuantumError()
	assert.Len(t, fresh.ID, 32)
	parsed, err := uuid.Parse(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	// A supplied v4 ID is normalized to hex form.
	qe := NewAerQuantumError()
	qe.ID = "67e55044-10b1-426f-9247-bb680e5fe0c8"
	qe.Instructions = [][]InstructionSlot{{}}
	qe.Probabilities = []float64{1.0}
	require.NoError(t, qe.Validate())
	assert.Equal(t, "67e5504410b1426f9247bb680e5fe0c8", qe.ID)

	// Non-v4 and malformed IDs are rejected.
	for _, id := range []string{"not-a-uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		qe := NewAerQuantumError()
		qe.ID = id
		qe.Instructions = [][]InstructionSlot{{}}
		qe.Probabilities = []float64{1.0}
		assert.Error(t, qe.Validate(), id)
	}
}

func TestAerQuantumErrorMinItems(t *testing.T) {
	payload := `{"type":"qerror","id":"` + NewAerQuantumError().ID + `","instructions":[[{"name":"x","qubits":[0]}]],"probabilities":[]}`
	_, err := AerErrors.Decode([]byte(payload))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))

	// Only probabilities has a minimum length; instructions may be empty.
	payload = `{"type":"qerror","id":"` + NewAerQuantumError().ID + `","instructions":[],"probabilities":[1.0]}`
	_, err = AerErrors.Decode([]byte(payload))
	assert.NoError(t, err)
}

func TestAerReadoutErrorDefaults(t *testing.T) {
	rec, err := AerErrors.Decode([]byte(`{"type":"roerror","probabilities":[[0.9,0.1],[0.2,0.8]]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"measure"}, rec.(*AerReadoutError).Operations)
}

func TestAerNoiseModelRoundTrip(t *testing.T) {
	id := NewAerQuantumError().ID
	payload := `{"errors":[` +
		`{"type":"qerror","id":"` + id + `","operations":["x"],` +
		`"instructions":[[{"name":"x","qubits":[0]}]],"probabilities":[1.0],"gate_qubits":[[0]]},` +
		`{"type":"roerror","operations":["measure"],"probabilities":[[0.9,0.1],[0.2,0.8]],"gate_qubits":[[0]]}]}`

	var model AerNoiseModel
	require.NoError(t, jsonx.Unmarshal([]byte(payload), &model))
	require.NoError(t, model.Validate())
	require.Len(t, model.Errors, 2)
	assert.Equal(t, TagAerQuantumError, model.Errors[0].Tag())
	assert.Equal(t, TagAerReadoutError, model.Errors[1].Tag())

	data, err := jsonx.Marshal(&model)
	require.NoError(t, err)

	var again AerNoiseModel
	require.NoError(t, jsonx.Unmarshal(data, &again))
	assert.Equal(t, model, again)
}

func TestCrosstalkParamsRoundTrip(t *testing.T) {
	params := CrosstalkParams{
		ZZCrosstalks: []CouplingStrength{{
			From:  register("q", 0),
			To:    register("q", 1),
			Value: 0.001,
		}},
		VirtualZ: true,
		N:        2,
		GateTimes: []GateTime{{
			Gate:      "ZZMax",
			Registers: []backendinfo.Register{register("q", 0), register("q", 1)},
			Time:      0.1,
		}},
	}

	data, err := jsonx.Marshal(&params)
	require.NoError(t, err)

	var again CrosstalkParams
	require.NoError(t, jsonx.Unmarshal(data, &again))
	assert.Equal(t, params, again)
}
