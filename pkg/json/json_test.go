package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalObjectPreservesNumbers(t *testing.T) {
	obj, err := UnmarshalObject([]byte(`{"seed":9007199254740993,"ratio":0.5}`))
	require.NoError(t, err)

	seed, ok := obj["seed"].(Number)
	require.True(t, ok)
	v, err := seed.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), v)

	ratio, ok := obj["ratio"].(Number)
	require.True(t, ok)
	f, err := ratio.Float64()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)
}

func TestMarshalRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Seed *int64 `json:"seed,omitempty"`
	}

	data, err := Marshal(payload{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, string(data))

	var out payload
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, "x", out.Name)
	assert.Nil(t, out.Seed)
}

func TestUnmarshalNumeric(t *testing.T) {
	var values []interface{}
	require.NoError(t, UnmarshalNumeric([]byte(`[9007199254740993,0.5]`), &values))
	require.Len(t, values, 2)

	n, ok := values[0].(Number)
	require.True(t, ok)
	assert.Equal(t, "9007199254740993", n.String())
}

func TestMarshalResultsAreIndependent(t *testing.T) {
	first, err := Marshal(map[string]string{"a": "1"})
	require.NoError(t, err)

	second, err := Marshal(map[string]string{"b": "2"})
	require.NoError(t, err)

	// Earlier results must not alias the pooled buffer.
	assert.Equal(t, `{"a":"1"}`, string(first))
	assert.Equal(t, `{"b":"2"}`, string(second))
}

func TestBufferPool(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("hello")
	assert.Equal(t, "hello", buf.String())
	PutBuffer(buf)

	again := GetBuffer()
	assert.Zero(t, again.Len())
	PutBuffer(again)
}
