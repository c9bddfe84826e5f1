package rtype

import (
	"strings"

	"github.com/reoring/rtype/i18n"
	js "github.com/reoring/rtype/jsonschema"
)

// UnionType is an ordered disjunction resolved by the first member whose
// Cast succeeds.
type UnionType struct {
	members []Type
}

// Union builds a union of at least one member.
func Union(members ...Type) (*UnionType, error) {
	if len(members) == 0 {
		return nil, unsupported(i18n.EmptyUnion, nil)
	}
	for _, m := range members {
		if IsNil(m) {
			return nil, unsupported(i18n.NotAType, map[string]string{"value": "null"})
		}
	}
	return &UnionType{members: append([]Type(nil), members...)}, nil
}

// Members returns the member types in declaration order.
func (t *UnionType) Members() []Type {
	return append([]Type(nil), t.members...)
}

func (*UnionType) Kind() Kind { return KindUnion }

// Cast returns the first successful member cast. Recoverable member
// failures are dropped; when every member fails the union reports
// invalid_cast. Any other failure is returned as is.
func (t *UnionType) Cast(v any) (any, error) {
	for _, m := range t.members {
		out, err := m.Cast(v)
		if err == nil {
			return out, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}
	}
	return nil, invalidCast(v, t)
}

func (t *UnionType) IsValidType(v any) bool {
	for _, m := range t.members {
		if m.IsValidType(v) {
			return true
		}
	}
	return false
}

func (t *UnionType) DefaultValue() any { return t.members[0].DefaultValue() }

func (t *UnionType) String() string {
	parts := make([]string, len(t.members))
	for i, m := range t.members {
		parts[i] = m.String()
	}
	return "union(" + strings.Join(parts, ",") + ")"
}

func (t *UnionType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (t *UnionType) tsType(multiline bool, level int) string {
	parts := make([]string, len(t.members))
	for i, m := range t.members {
		parts[i] = m.tsType(multiline, level)
	}
	return strings.Join(parts, " | ")
}

func (t *UnionType) JSONSchema() (*js.Schema, error) {
	if len(t.members) == 1 {
		return t.members[0].JSONSchema()
	}
	out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(t.members))}
	for _, m := range t.members {
		s, err := m.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.AnyOf = append(out.AnyOf, s)
	}
	return out, nil
}
