package rtype

import (
	"reflect"

	js "github.com/reoring/rtype/jsonschema"
)

// Kind identifies a Type variant.
type Kind int

const (
	KindAny Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindDate
	KindObject
	KindInstanceOf
	KindArray
	KindShape
	KindEnum
	KindUnion
)

var kindNames = [...]string{
	KindAny:        "any",
	KindInteger:    "integer",
	KindFloat:      "float",
	KindString:     "string",
	KindBoolean:    "boolean",
	KindDate:       "date",
	KindObject:     "object",
	KindInstanceOf: "instanceof",
	KindArray:      "array",
	KindShape:      "shape",
	KindEnum:       "enum",
	KindUnion:      "union",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Type is a composable runtime type descriptor. The set of implementations is
// closed: the primitives, InstanceOf, ArrayOf, Enum, Union and Shape.
// Types are immutable and safe for concurrent use.
type Type interface {
	Kind() Kind
	// Cast converts v into the canonical representation of the type. It fails
	// with an *Error coded invalid_cast or unsupported_operation.
	Cast(v any) (any, error)
	// IsValidType checks the dynamic kind of v without attempting coercion.
	IsValidType(v any) bool
	// DefaultValue returns the canonical empty value of the type.
	DefaultValue() any
	// String returns the descriptor accepted by FromString.
	String() string
	// TSType projects the type to a TypeScript declaration.
	TSType(multiline bool) string
	// JSONSchema projects the type into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)

	tsType(multiline bool, level int) string
}

// CanCast reports whether t.Cast(v) succeeds. Recoverable failures
// (invalid_cast, unsupported_operation) yield false; any other failure is
// returned to the caller.
func CanCast(t Type, v any) (bool, error) {
	if _, err := t.Cast(v); err != nil {
		if IsRecoverable(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsValid is the strict check: v must be castable and already of the
// expected kind.
func IsValid(t Type, v any) (bool, error) {
	ok, err := CanCast(t, v)
	if err != nil || !ok {
		return false, err
	}
	return t.IsValidType(v), nil
}

// SaveCast returns t.Cast(v), or t.DefaultValue() when the cast fails.
func SaveCast(t Type, v any) any {
	return SaveCastOr(t, v, t.DefaultValue())
}

// SaveCastOr returns t.Cast(v), or fallback when the cast fails.
func SaveCastOr(t Type, v any, fallback any) any {
	out, err := t.Cast(v)
	if err != nil {
		return fallback
	}
	return out
}

// Compare reports whether a and b are the same node or serialize to the same
// descriptor.
func Compare(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	return a.String() == b.String()
}

// Must panics when err is non-nil and returns t otherwise. It is meant for
// package-level type declarations.
func Must[T Type](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

// IsNil reports whether t is nil, including a typed nil pointer such as
// (*ShapeType)(nil).
func IsNil(t Type) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
