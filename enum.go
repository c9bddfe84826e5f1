package rtype

import (
	"strings"

	"github.com/reoring/rtype/i18n"
	js "github.com/reoring/rtype/jsonschema"
)

// EnumType accepts one of an ordered set of strings.
type EnumType struct {
	def    string
	values []string
	set    map[string]struct{}
}

// Enum builds an enumeration with default value def. When def is not among
// values it is prepended to the set.
//
// Values must be non-empty, free of surrounding blanks and single quotes,
// and unique, so that every enumeration has a descriptor form.
func Enum(def string, values ...string) (*EnumType, error) {
	all := make([]string, 0, len(values)+1)
	found := false
	for _, v := range values {
		if v == def {
			found = true
			break
		}
	}
	if !found {
		all = append(all, def)
	}
	all = append(all, values...)
	set := make(map[string]struct{}, len(all))
	for _, v := range all {
		if err := checkEnumValue(v); err != nil {
			return nil, err
		}
		if _, dup := set[v]; dup {
			return nil, unsupported(i18n.InvalidEnum, map[string]string{"value": v, "reason": "duplicate value"})
		}
		set[v] = struct{}{}
	}
	return &EnumType{def: def, values: all, set: set}, nil
}

func checkEnumValue(v string) error {
	reason := ""
	switch {
	case v == "":
		reason = "empty value"
	case strings.TrimSpace(v) != v:
		reason = "surrounding blanks"
	case strings.ContainsRune(v, '\''):
		reason = "single quote"
	}
	if reason != "" {
		return unsupported(i18n.InvalidEnum, map[string]string{"value": v, "reason": reason})
	}
	return nil
}

// Values returns the permitted values in declaration order.
func (t *EnumType) Values() []string {
	return append([]string(nil), t.values...)
}

// Contains reports whether s is a member.
func (t *EnumType) Contains(s string) bool {
	_, ok := t.set[s]
	return ok
}

func (*EnumType) Kind() Kind { return KindEnum }

// Cast stringifies and trims v, then checks membership.
func (t *EnumType) Cast(v any) (any, error) {
	if v == nil {
		return nil, invalidCast(v, t)
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" || !t.Contains(s) {
		return nil, invalidCast(v, t)
	}
	return s, nil
}

func (*EnumType) IsValidType(v any) bool {
	_, ok := v.(string)
	return ok
}

func (t *EnumType) DefaultValue() any { return t.def }

func (t *EnumType) String() string {
	return "enum(" + t.quoted(",") + ")"
}

func (t *EnumType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (t *EnumType) tsType(bool, int) string { return t.quoted(" | ") }

func (t *EnumType) quoted(sep string) string {
	b := &strings.Builder{}
	for i, v := range t.values {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteByte('\'')
		b.WriteString(v)
		b.WriteByte('\'')
	}
	return b.String()
}

func (t *EnumType) JSONSchema() (*js.Schema, error) {
	enum := make([]any, len(t.values))
	for i, v := range t.values {
		enum[i] = v
	}
	return &js.Schema{Type: "string", Enum: enum, Default: t.def}, nil
}
