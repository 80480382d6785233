// Package errors provides structured error handling for qschemas
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeConstraint represents a single field violating its declared domain
	ErrorTypeConstraint ErrorType = "constraint"
	// ErrorTypeCrossField represents a violated relationship between two or more fields
	ErrorTypeCrossField ErrorType = "cross_field"
	// ErrorTypeAbstract represents direct construction of a non-instantiable base variant
	ErrorTypeAbstract ErrorType = "abstract"
	// ErrorTypeUnknownVariant represents a missing or unregistered discriminator tag
	ErrorTypeUnknownVariant ErrorType = "unknown_variant"
	// ErrorTypeValidation represents general payload validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeRegistry represents variant registration errors (programmer errors)
	ErrorTypeRegistry ErrorType = "registry"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithField prepends a path segment to the error's field path, so that
// violations inside nested records report the full path (e.g.
// "error_model.p_1q") to the caller.
func (e *Error) WithField(segment string) *Error {
	if existing, ok := e.Details["field"].(string); ok && existing != "" {
		return e.WithDetail("field", segment+"."+existing)
	}
	return e.WithDetail("field", segment)
}

// Field returns the field path recorded on the error, if any.
func (e *Error) Field() string {
	if f, ok := e.Details["field"].(string); ok {
		return f
	}
	return ""
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// NewConstraintViolation reports a field whose value lies outside its
// declared domain. The field name, constraint description and offending
// value are carried in the error details.
func NewConstraintViolation(field, constraint string, value interface{}) *Error {
	return &Error{
		Type:    ErrorTypeConstraint,
		Message: fmt.Sprintf("field %q %s (got %v)", field, constraint, value),
		Details: map[string]interface{}{
			"field":      field,
			"constraint": constraint,
			"value":      value,
		},
		Stack: captureStack(2),
	}
}

// NewCrossFieldViolation reports a violated relationship between two or
// more fields. The involved field names and the rule are carried in the
// error details.
func NewCrossFieldViolation(rule string, fields ...string) *Error {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	return &Error{
		Type:    ErrorTypeCrossField,
		Message: fmt.Sprintf("fields %s: %s", strings.Join(sorted, ", "), rule),
		Details: map[string]interface{}{
			"fields": sorted,
			"rule":   rule,
		},
		Stack: captureStack(2),
	}
}

// NewAbstractInstantiation reports an attempt to construct a
// non-instantiable base variant directly.
func NewAbstractInstantiation(typeName string) *Error {
	return &Error{
		Type:    ErrorTypeAbstract,
		Message: fmt.Sprintf("%s cannot be instantiated directly", typeName),
		Details: map[string]interface{}{"type": typeName},
		Stack:   captureStack(2),
	}
}

// NewUnknownVariant reports a discriminator value that matches no
// registered tag.
func NewUnknownVariant(tag string) *Error {
	return &Error{
		Type:    ErrorTypeUnknownVariant,
		Message: fmt.Sprintf("unknown variant tag %q", tag),
		Details: map[string]interface{}{"tag": tag},
		Stack:   captureStack(2),
	}
}

// NewMissingDiscriminator reports a wire object with no discriminator key.
func NewMissingDiscriminator(key string) *Error {
	return &Error{
		Type:    ErrorTypeUnknownVariant,
		Message: fmt.Sprintf("missing discriminator field %q", key),
		Details: map[string]interface{}{"discriminator": key},
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// IsValidation reports whether the error belongs to the validation
// family (constraint, cross-field, abstract, unknown variant or general
// validation). Callers get a single error surface regardless of which
// stage of dispatch or construction failed.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Type {
	case ErrorTypeConstraint, ErrorTypeCrossField, ErrorTypeAbstract,
		ErrorTypeUnknownVariant, ErrorTypeValidation:
		return true
	default:
		return false
	}
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
