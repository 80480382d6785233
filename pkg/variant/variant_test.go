package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qompute/qschemas/pkg/errors"
	"github.com/qompute/qschemas/pkg/field"
	jsonx "github.com/qompute/qschemas/pkg/json"
)

// widget is a minimal variant used to exercise the family machinery.
type widget struct {
	Type  string  `json:"type"`
	Size  int     `json:"size"`
	Ratio float64 `json:"ratio"`
	Label *string `json:"label,omitempty"`
}

func newWidget() *widget {
	return &widget{Type: "Widget", Size: 10}
}

func (w *widget) Tag() string { return "Widget" }

func (w *widget) Validate() error {
	tag, err := CheckTag(w.Type, "Widget")
	if err != nil {
		return err
	}
	w.Type = tag

	if err := field.Positive("size", w.Size); err != nil {
		return err
	}
	return field.InRange("ratio", w.Ratio, 0.0, 1.0)
}

func newTestFamily(t *testing.T) *Family {
	t.Helper()
	f := NewFamily("widget", "type")
	require.NoError(t, f.Register("Widget", func() Record { return newWidget() }))
	return f
}

func TestRegisterDuplicateTagFails(t *testing.T) {
	f := newTestFamily(t)

	err := f.Register("Widget", func() Record { return newWidget() })
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRegistry))
	assert.False(t, errors.IsValidation(err))
}

func TestRegisterEmptyTagFails(t *testing.T) {
	f := NewFamily("widget", "type")
	assert.Error(t, f.Register("", func() Record { return newWidget() }))
}

func TestDecodeAppliesDefaults(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget"}`))
	require.NoError(t, err)

	w := rec.(*widget)
	assert.Equal(t, 10, w.Size) // factory default survives an absent field
	assert.Nil(t, w.Label)
}

func TestDecodeOverlaysWireValues(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget","size":3,"ratio":0.5,"label":"a"}`))
	require.NoError(t, err)

	w := rec.(*widget)
	assert.Equal(t, 3, w.Size)
	assert.Equal(t, 0.5, w.Ratio)
	require.NotNil(t, w.Label)
	assert.Equal(t, "a", *w.Label)
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget","future_field":[1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec.Tag())
}

func TestDecodeUnknownTag(t *testing.T) {
	f := newTestFamily(t)

	_, err := f.Decode([]byte(`{"type":"Gadget"}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownVariant))
	assert.True(t, errors.IsValidation(err))
}

func TestDecodeMissingDiscriminator(t *testing.T) {
	f := newTestFamily(t)

	for _, payload := range []string{`{}`, `{"size":3}`, `{"type":null}`} {
		_, err := f.Decode([]byte(payload))
		require.Error(t, err, payload)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownVariant), payload)
	}
}

func TestDecodeNonStringDiscriminator(t *testing.T) {
	f := newTestFamily(t)

	_, err := f.Decode([]byte(`{"type":7}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownVariant))
}

func TestDecodeMalformedPayload(t *testing.T) {
	f := newTestFamily(t)

	_, err := f.Decode([]byte(`{"type":`))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDecodeRunsValidation(t *testing.T) {
	f := newTestFamily(t)

	_, err := f.Decode([]byte(`{"type":"Widget","ratio":1.5}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
}

func TestAbstractTagRejectedOnDecode(t *testing.T) {
	f := newTestFamily(t)
	require.NoError(t, f.RegisterAbstract("BaseWidget"))

	_, err := f.Decode([]byte(`{"type":"BaseWidget"}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAbstract))

	_, err = f.New("BaseWidget")
	assert.True(t, errors.IsType(err, errors.ErrorTypeAbstract))

	// The reserved tag cannot later become concrete.
	assert.Error(t, f.Register("BaseWidget", func() Record { return newWidget() }))
}

func TestAliasDispatchesToCurrentVariant(t *testing.T) {
	f := newTestFamily(t)
	require.NoError(t, f.RegisterAlias("OldWidget", "Widget"))

	obj := map[string]interface{}{"type": "OldWidget", "size": float64(4)}
	rec, err := f.DecodeObject(obj)
	require.NoError(t, err)

	w := rec.(*widget)
	assert.Equal(t, "Widget", w.Type)
	assert.Equal(t, 4, w.Size)
	// The caller's object is untouched.
	assert.Equal(t, "OldWidget", obj["type"])
}

func TestAliasRegistrationRules(t *testing.T) {
	f := newTestFamily(t)

	// Target must exist.
	assert.Error(t, f.RegisterAlias("Old", "Missing"))
	// An alias must not shadow a concrete variant.
	assert.Error(t, f.RegisterAlias("Widget", "Widget"))

	require.NoError(t, f.RegisterAlias("Old", "Widget"))
	// Re-registering the same mapping is harmless; a conflicting one is not.
	assert.NoError(t, f.RegisterAlias("Old", "Widget"))
	require.NoError(t, f.Register("Widget2", func() Record { return newWidget() }))
	assert.Error(t, f.RegisterAlias("Old", "Widget2"))
}

func TestRewriteRenameField(t *testing.T) {
	f := newTestFamily(t)
	require.NoError(t, f.RegisterRewrite("Widget", RenameField("sz", "size")))

	rec, err := f.Decode([]byte(`{"type":"Widget","sz":5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, rec.(*widget).Size)

	// The current name wins when both are present.
	rec, err = f.Decode([]byte(`{"type":"Widget","sz":5,"size":6}`))
	require.NoError(t, err)
	assert.Equal(t, 6, rec.(*widget).Size)
}

func TestRewriteJoinFields(t *testing.T) {
	f := newTestFamily(t)
	require.NoError(t, f.RegisterRewrite("Widget", JoinFields("label", "/", "hub", "group")))

	rec, err := f.Decode([]byte(`{"type":"Widget","hub":"h","group":"g"}`))
	require.NoError(t, err)
	w := rec.(*widget)
	require.NotNil(t, w.Label)
	assert.Equal(t, "h/g", *w.Label)

	// A present current field suppresses the join.
	rec, err = f.Decode([]byte(`{"type":"Widget","hub":"h","group":"g","label":"keep"}`))
	require.NoError(t, err)
	assert.Equal(t, "keep", *rec.(*widget).Label)
}

func TestTagsSorted(t *testing.T) {
	f := newTestFamily(t)
	require.NoError(t, f.Register("Apple", func() Record { return newWidget() }))

	assert.Equal(t, []string{"Apple", "Widget"}, f.Tags())
	assert.True(t, f.Has("Widget"))
	assert.False(t, f.Has("Gadget"))
}

func TestCheckTag(t *testing.T) {
	got, err := CheckTag("", "Widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got)

	got, err = CheckTag("Widget", "Widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got)

	_, err = CheckTag("Gadget", "Widget")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConstraint))
}

func TestEncodeRoundTripIsIdempotent(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget","size":2,"ratio":0.25}`))
	require.NoError(t, err)

	first, err := Encode(rec)
	require.NoError(t, err)

	again, err := f.Decode(first)
	require.NoError(t, err)
	second, err := Encode(again)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToWirePreservesLargeIntegers(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget","size":9007199254740993,"ratio":0}`))
	require.NoError(t, err)
	assert.Equal(t, 9007199254740993, rec.(*widget).Size)

	obj, err := ToWire(rec)
	require.NoError(t, err)
	num, ok := obj["size"].(jsonx.Number)
	require.True(t, ok, "size should round-trip as a lossless number")
	v, err := num.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), v)
}

func TestEncodeOmitsUnsetOptionals(t *testing.T) {
	f := newTestFamily(t)

	rec, err := f.Decode([]byte(`{"type":"Widget"}`))
	require.NoError(t, err)

	data, err := Encode(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "label")
	assert.Contains(t, string(data), `"type":"Widget"`)
}
