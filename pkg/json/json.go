// Package json provides JSON serialization helpers for qschemas built on
// goccy/go-json, with pooled buffers and number-preserving decoding.
package json

import (
	"bytes"
	"sync"

	gojson "github.com/goccy/go-json"
)

// Number is the lossless JSON number representation used on wire objects.
type Number = gojson.Number

// RawMessage is a raw encoded JSON value.
type RawMessage = gojson.RawMessage

// Global buffer pool for encode round-trips
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a pooled bytes.Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 1024*1024 { // Don't pool very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Marshal encodes v using goccy/go-json through a pooled buffer.
func Marshal(v interface{}) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := gojson.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	// Remove trailing newline added by Encode
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}

	// Create a copy since the buffer goes back to the pool
	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// MarshalIndent encodes v with indentation for human-facing output
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data using goccy/go-json
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// UnmarshalObject decodes data into a wire object. Numbers are decoded
// as json.Number so 64-bit integers survive the map round-trip without
// float64 truncation.
func UnmarshalObject(data []byte) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := UnmarshalNumeric(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UnmarshalNumeric decodes data into v with numbers decoded as Number, for
// untyped destinations whose integer values must not pass through float64.
func UnmarshalNumeric(data []byte, v interface{}) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
