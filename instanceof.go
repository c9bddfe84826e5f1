package rtype

import (
	"reflect"

	"github.com/reoring/rtype/i18n"
	js "github.com/reoring/rtype/jsonschema"
)

// Class is a nominal tag checked by InstanceOf.
type Class interface {
	// Name is used as the descriptor and the TypeScript type.
	Name() string
	// IsInstance reports whether v is an instance of the class. A non-nil
	// error aborts the cast and is returned unchanged.
	IsInstance(v any) (bool, error)
}

type funcClass struct {
	name string
	fn   func(any) (bool, error)
}

func (c funcClass) Name() string                   { return c.name }
func (c funcClass) IsInstance(v any) (bool, error) { return c.fn(v) }

// NewClass builds a Class from a name and a membership predicate.
func NewClass(name string, fn func(v any) (bool, error)) Class {
	return funcClass{name: name, fn: fn}
}

// ClassOf returns the Class of the Go type T. Values of type T and *T are
// instances; when T is an interface, every implementation is.
func ClassOf[T any]() Class {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	name := rt.Name()
	if name == "" {
		name = rt.String()
	}
	return funcClass{name: name, fn: func(v any) (bool, error) {
		if v == nil {
			return false, nil
		}
		vt := reflect.TypeOf(v)
		switch {
		case vt == rt:
			return true, nil
		case rt.Kind() == reflect.Interface:
			return vt.Implements(rt), nil
		case vt.Kind() == reflect.Pointer && vt.Elem() == rt:
			return !reflect.ValueOf(v).IsNil(), nil
		}
		return false, nil
	}}
}

// InstanceOfType accepts values of a nominal Class unchanged.
type InstanceOfType struct {
	class Class
}

// InstanceOf builds a nominal type. A nil class fails with
// unsupported_operation.
func InstanceOf(class Class) (*InstanceOfType, error) {
	if class == nil {
		return nil, unsupported(i18n.NotAType, map[string]string{"value": "null"})
	}
	return &InstanceOfType{class: class}, nil
}

// Class returns the nominal tag.
func (t *InstanceOfType) Class() Class { return t.class }

func (*InstanceOfType) Kind() Kind { return KindInstanceOf }

func (t *InstanceOfType) Cast(v any) (any, error) {
	ok, err := t.class.IsInstance(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(CodeInvalidCast, i18n.InvalidInstance,
			map[string]string{"value": describeValue(v), "type": t.class.Name()}, nil)
	}
	return v, nil
}

// IsValidType is always true: the nominal check in Cast subsumes it.
func (*InstanceOfType) IsValidType(any) bool { return true }

func (*InstanceOfType) DefaultValue() any { return nil }

// String returns the class name. The grammar has no production for it, so
// the result does not parse back.
func (t *InstanceOfType) String() string { return t.class.Name() }

func (t *InstanceOfType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (t *InstanceOfType) tsType(bool, int) string { return t.class.Name() }

func (t *InstanceOfType) JSONSchema() (*js.Schema, error) {
	return nil, newError(CodeNotImplemented, i18n.NotImplemented,
		map[string]string{"type": t.class.Name(), "value": "JSONSchema"}, nil)
}
