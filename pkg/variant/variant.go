// Package variant implements the tagged-union engine behind every
// configuration family in qschemas: a closed registry of variant factories
// keyed by a wire discriminator, a dispatcher that turns wire payloads into
// exactly one validated record, a canonical round-trip codec, and a legacy
// compatibility adapter for payloads produced by earlier schema versions.
//
// A Family is built once at process initialization (duplicate tags are a
// startup error, never a request-time one) and is safe for concurrent use:
// dispatch is a pure computation over the payload and records are treated
// as immutable after construction.
package variant

import (
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/logger"
)

// Record is the capability shared by every configuration variant: a stable
// discriminator tag and construction-time validation. Records are value
// objects; once a Record has been produced by a Family or a constructor it
// must not be mutated.
type Record interface {
	// Tag returns the static discriminator for the record's variant.
	Tag() string
	// Validate runs field-level constraints and cross-field rules. It is
	// called exactly once, at construction time.
	Validate() error
}

// Factory produces a new record of one variant with its declared field
// defaults already applied, ready to be overlaid with wire data.
type Factory func() Record

// Family is a closed set of mutually exclusive variants selected by a
// single discriminator key.
type Family struct {
	name          string
	discriminator string

	mu        sync.RWMutex
	factories map[string]Factory
	abstract  map[string]bool
	aliases   map[string]string
	rewrites  map[string][]Rewrite

	logger *zap.Logger
}

// NewFamily creates an empty variant family. The discriminator is the
// well-known wire key whose value selects the variant (commonly "type").
func NewFamily(name, discriminator string) *Family {
	return &Family{
		name:          name,
		discriminator: discriminator,
		factories:     make(map[string]Factory),
		abstract:      make(map[string]bool),
		aliases:       make(map[string]string),
		rewrites:      make(map[string][]Rewrite),
		logger:        logger.Get().With(zap.String("family", name)),
	}
}

// Name returns the family's descriptive name.
func (f *Family) Name() string { return f.name }

// Discriminator returns the wire key holding the variant tag.
func (f *Family) Discriminator() string { return f.discriminator }

// Register adds a variant factory under its tag. Registering the same tag
// twice is a configuration error: the family must stay disjoint, so the
// second registration fails instead of silently shadowing the first.
func (f *Family) Register(tag string, factory Factory) error {
	if tag == "" {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: variant tag must not be empty", f.name))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[tag]; exists {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: variant %q already registered", f.name, tag))
	}
	if f.abstract[tag] {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: tag %q is reserved for an abstract base", f.name, tag))
	}

	f.factories[tag] = factory
	f.logger.Debug("variant registered", zap.String("tag", tag))
	return nil
}

// MustRegister registers a variant and panics on failure. Registration
// happens at process initialization, where a duplicate tag is a programmer
// error and must be fatal at startup rather than surface at request time.
func (f *Family) MustRegister(tag string, factory Factory) {
	if err := f.Register(tag, factory); err != nil {
		panic(err)
	}
}

// RegisterAbstract reserves a tag for a non-instantiable base variant.
// Decoding a payload carrying this tag fails with an abstract
// instantiation error instead of producing a record.
func (f *Family) RegisterAbstract(tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[tag]; exists {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: tag %q already registered as a concrete variant", f.name, tag))
	}
	f.abstract[tag] = true
	return nil
}

// MustRegisterAbstract reserves an abstract tag and panics on failure.
func (f *Family) MustRegisterAbstract(tag string) {
	if err := f.RegisterAbstract(tag); err != nil {
		panic(err)
	}
}

// Has reports whether tag is registered as a concrete variant.
func (f *Family) Has(tag string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.factories[tag]
	return exists
}

// Tags returns the sorted tags of every concrete variant in the family.
func (f *Family) Tags() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	tags := make([]string, 0, len(f.factories))
	for tag := range f.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// New constructs a fresh record for tag with defaults applied but without
// decoding any wire data. The record is not yet validated.
func (f *Family) New(tag string) (Record, error) {
	f.mu.RLock()
	factory, known := f.factories[tag]
	abstract := f.abstract[tag]
	f.mu.RUnlock()

	if abstract {
		return nil, errors.NewAbstractInstantiation(tag)
	}
	if !known {
		return nil, errors.NewUnknownVariant(tag)
	}
	return factory(), nil
}

// Decode parses a wire payload into exactly one validated record.
func (f *Family) Decode(data []byte) (Record, error) {
	obj, err := jsonx.UnmarshalObject(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("family %s: malformed wire payload", f.name))
	}
	return f.DecodeObject(obj)
}

// DecodeObject dispatches a wire object on its discriminator tag and
// delegates construction and validation to the matching variant. The
// caller's object is never mutated. Unknown keys that the matched variant
// does not declare are ignored for forward compatibility.
func (f *Family) DecodeObject(obj map[string]interface{}) (Record, error) {
	raw, ok := obj[f.discriminator]
	if !ok || raw == nil {
		return nil, errors.NewMissingDiscriminator(f.discriminator)
	}
	tag, ok := raw.(string)
	if !ok {
		return nil, errors.NewUnknownVariant(fmt.Sprintf("%v", raw))
	}

	f.mu.RLock()
	current, aliased := f.aliases[tag]
	f.mu.RUnlock()
	if aliased {
		obj = cloneObject(obj)
		tag = current
		obj[f.discriminator] = tag
	}

	f.mu.RLock()
	factory, known := f.factories[tag]
	abstract := f.abstract[tag]
	rewrites := f.rewrites[tag]
	f.mu.RUnlock()

	if abstract {
		return nil, errors.NewAbstractInstantiation(tag)
	}
	if !known {
		return nil, errors.NewUnknownVariant(tag)
	}

	if len(rewrites) > 0 {
		if !aliased {
			obj = cloneObject(obj)
		}
		for _, rewrite := range rewrites {
			rewrite(obj)
		}
	}

	data, err := jsonx.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("family %s: wire object not serializable", f.name))
	}

	rec := factory()
	if err := jsonx.Unmarshal(data, rec); err != nil {
		// Nested union dispatch reports structured violations through
		// the decoder; pass those through untouched.
		var structured *errors.Error
		if stderrors.As(err, &structured) {
			return nil, structured
		}
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("invalid payload for variant %q", tag))
	}

	if err := rec.Validate(); err != nil {
		var structured *errors.Error
		if stderrors.As(err, &structured) {
			return nil, structured
		}
		return nil, errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("validation failed for variant %q", tag))
	}
	return rec, nil
}

// cloneObject makes a shallow copy of a wire object before the legacy
// adapter rewrites it. Nested values are shared; rewrites only touch
// top-level keys.
func cloneObject(obj map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out
}
