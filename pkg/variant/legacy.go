package variant

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/qompute/qschemas/pkg/errors"
)

// Rewrite adjusts a wire object produced by an earlier schema version so
// it satisfies the current variant's field set. Rewrites run after tag
// aliasing and before construction, and only see a private copy of the
// payload.
type Rewrite func(obj map[string]interface{})

// RegisterAlias maps a deprecated tag to a current one. Payloads carrying
// the legacy tag dispatch to the current variant; failures there surface
// through the normal validation taxonomy, so callers never need to know
// which schema vintage a payload came from.
func (f *Family) RegisterAlias(legacyTag, currentTag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[currentTag]; !exists {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: alias target %q is not registered", f.name, currentTag))
	}
	if _, exists := f.factories[legacyTag]; exists {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: alias %q shadows a registered variant", f.name, legacyTag))
	}
	if prior, exists := f.aliases[legacyTag]; exists && prior != currentTag {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: alias %q is ambiguous (%q vs %q)", f.name, legacyTag, prior, currentTag))
	}

	f.aliases[legacyTag] = currentTag
	f.logger.Debug("legacy alias registered",
		zap.String("legacy", legacyTag), zap.String("current", currentTag))
	return nil
}

// MustRegisterAlias registers a legacy tag alias and panics on failure.
func (f *Family) MustRegisterAlias(legacyTag, currentTag string) {
	if err := f.RegisterAlias(legacyTag, currentTag); err != nil {
		panic(err)
	}
}

// RegisterRewrite attaches a legacy field rewrite to a registered tag.
func (f *Family) RegisterRewrite(tag string, rewrite Rewrite) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[tag]; !exists {
		return errors.New(errors.ErrorTypeRegistry,
			fmt.Sprintf("family %s: rewrite target %q is not registered", f.name, tag))
	}
	f.rewrites[tag] = append(f.rewrites[tag], rewrite)
	return nil
}

// MustRegisterRewrite attaches a rewrite and panics on failure.
func (f *Family) MustRegisterRewrite(tag string, rewrite Rewrite) {
	if err := f.RegisterRewrite(tag, rewrite); err != nil {
		panic(err)
	}
}

// RenameField moves a deprecated field to its current name. The current
// name wins when both are present.
func RenameField(legacy, current string) Rewrite {
	return func(obj map[string]interface{}) {
		value, ok := obj[legacy]
		if !ok {
			return
		}
		delete(obj, legacy)
		if _, taken := obj[current]; !taken {
			obj[current] = value
		}
	}
}

// JoinFields collapses several deprecated string fields into one current
// field, joined with sep. The rewrite only fires when every part is
// present as a string and the current field is absent.
func JoinFields(current, sep string, legacy ...string) Rewrite {
	return func(obj map[string]interface{}) {
		if _, taken := obj[current]; taken {
			return
		}

		parts := make([]string, 0, len(legacy))
		for _, name := range legacy {
			s, ok := obj[name].(string)
			if !ok {
				return
			}
			parts = append(parts, s)
		}

		for _, name := range legacy {
			delete(obj, name)
		}
		obj[current] = strings.Join(parts, sep)
	}
}
