package rtype

import (
	"reflect"
	"strings"

	js "github.com/reoring/rtype/jsonschema"
)

// StringType casts any truthy value to its string form; falsy values
// (nil, "", 0, false) become nil.
type StringType struct{}

// BooleanType casts by truthiness, except that "false" and "0" (after
// trimming) are false.
type BooleanType struct{}

// ObjectType accepts any value of object kind: maps, slices, structs,
// pointers and nil.
type ObjectType struct{}

// AnyType accepts everything unchanged.
type AnyType struct{}

// Primitive singletons.
var (
	String  = &StringType{}
	Boolean = &BooleanType{}
	Object  = &ObjectType{}
	Any     = &AnyType{}
)

func (*StringType) Kind() Kind { return KindString }

func (*StringType) Cast(v any) (any, error) {
	if !truthy(v) {
		return nil, nil
	}
	return stringify(v), nil
}

func (*StringType) IsValidType(v any) bool {
	_, ok := v.(string)
	return ok
}

func (*StringType) DefaultValue() any { return nil }

func (*StringType) String() string { return "string" }

func (t *StringType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*StringType) tsType(bool, int) string { return "string" }

func (*StringType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

func (*BooleanType) Kind() Kind { return KindBoolean }

func (*BooleanType) Cast(v any) (any, error) {
	if isText(v) {
		switch strings.TrimSpace(textOf(v)) {
		case "false", "0":
			return false, nil
		}
	}
	return truthy(v), nil
}

func (*BooleanType) IsValidType(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (*BooleanType) DefaultValue() any { return false }

func (*BooleanType) String() string { return "boolean" }

func (t *BooleanType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*BooleanType) tsType(bool, int) string { return "boolean" }

func (*BooleanType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

func (*ObjectType) Kind() Kind { return KindObject }

func (t *ObjectType) Cast(v any) (any, error) {
	if !isObjectKind(v) {
		return nil, invalidCast(v, t)
	}
	return v, nil
}

func (*ObjectType) IsValidType(v any) bool { return isObjectKind(v) }

func (*ObjectType) DefaultValue() any { return map[string]any{} }

func (*ObjectType) String() string { return "object" }

func (t *ObjectType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*ObjectType) tsType(bool, int) string { return "any" }

// JSONSchema leaves the type open: arrays and null are objects as well.
func (*ObjectType) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }

func isObjectKind(v any) bool {
	if v == nil {
		return true
	}
	if isNumber(v) {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String, reflect.Func, reflect.Complex64, reflect.Complex128:
		return false
	}
	return true
}

func (*AnyType) Kind() Kind { return KindAny }

func (*AnyType) Cast(v any) (any, error) { return v, nil }

func (*AnyType) IsValidType(any) bool { return true }

func (*AnyType) DefaultValue() any { return nil }

func (*AnyType) String() string { return "any" }

func (t *AnyType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*AnyType) tsType(bool, int) string { return "any" }

func (*AnyType) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }
