package rtype

import (
	"strconv"

	"github.com/reoring/rtype/i18n"
	js "github.com/reoring/rtype/jsonschema"
)

// ArrayType casts every element of a sequence with its element type.
type ArrayType struct {
	elem Type
}

// ArrayOf builds the array type of elem.
func ArrayOf(elem Type) (*ArrayType, error) {
	if IsNil(elem) {
		return nil, unsupported(i18n.NotAType, map[string]string{"value": "null"})
	}
	return &ArrayType{elem: elem}, nil
}

// Elem returns the element type.
func (t *ArrayType) Elem() Type { return t.elem }

func (*ArrayType) Kind() Kind { return KindArray }

// Cast returns a new []any. A non-sequence input fails with
// unsupported_operation; an element that cannot be cast fails the whole
// array with invalid_cast pointing at its index.
func (t *ArrayType) Cast(v any) (any, error) {
	if !isSequence(v) {
		return nil, unsupported(i18n.NotASequence, map[string]string{"value": describeValue(v)})
	}
	in := sequenceValues(v)
	out := make([]any, len(in))
	for i, e := range in {
		c, err := t.elem.Cast(e)
		if err != nil {
			return nil, wrapChild(err, strconv.Itoa(i), i18n.InvalidCastIndex,
				map[string]string{"index": strconv.Itoa(i), "type": t.elem.Kind().String()})
		}
		out[i] = c
	}
	return out, nil
}

func (*ArrayType) IsValidType(v any) bool { return isSequence(v) }

func (*ArrayType) DefaultValue() any { return []any{} }

func (t *ArrayType) String() string { return t.elem.String() + "[]" }

func (t *ArrayType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (t *ArrayType) tsType(multiline bool, level int) string {
	inner := t.elem.tsType(multiline, level)
	if needsParens(t.elem) {
		inner = "(" + inner + ")"
	}
	return inner + "[]"
}

func needsParens(t Type) bool {
	switch x := t.(type) {
	case *UnionType:
		return len(x.members) > 1
	case *EnumType:
		return len(x.values) > 1
	}
	return false
}

func (t *ArrayType) JSONSchema() (*js.Schema, error) {
	items, err := t.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: items}, nil
}

// wrapChild re-tags an invalid_cast from a nested value under token. Any
// other failure passes through, with its path rebased when it is an *Error.
func wrapChild(err error, token, msgKey string, params map[string]string) error {
	e, ok := AsError(err)
	if !ok {
		return err
	}
	if e.Code != CodeInvalidCast {
		return PrefixPath(err, token)
	}
	w := newError(CodeInvalidCast, msgKey, params, err)
	w.Path = joinPointer(token, e.Path)
	return w
}
