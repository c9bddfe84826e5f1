package rtype

import (
	"regexp"
	"strings"

	"github.com/reoring/rtype/i18n"
	js "github.com/reoring/rtype/jsonschema"
)

// Field is a declared shape entry. Key carries the markers: a trailing "?"
// makes the field optional and "[name]" makes it dynamic.
type Field struct {
	Key  string
	Type Type
}

// F is shorthand for Field{Key: key, Type: t}.
func F(key string, t Type) Field { return Field{Key: key, Type: t} }

type shapeField struct {
	key      string // declared key, markers included
	name     string // key without the optional marker
	typ      Type
	optional bool
	dynamic  bool
}

var dynamicKey = regexp.MustCompile(`^\[\w+\]$`)

// ShapeType is a record over fixed and dynamic fields.
type ShapeType struct {
	fields []shapeField
	fixed  map[string]int
	// dynamic holds indexes into fields in declaration order.
	dynamic []int
}

// Shape builds a record type. Fields keep their declaration order, which
// drives casting, the descriptor and the projections.
func Shape(fields ...Field) (*ShapeType, error) {
	t := &ShapeType{fixed: map[string]int{}}
	seen := map[string]struct{}{}
	for _, f := range fields {
		if IsNil(f.Type) {
			return nil, unsupported(i18n.NotAType, map[string]string{"value": "null"})
		}
		sf := shapeField{key: f.Key, name: f.Key, typ: f.Type}
		if strings.HasSuffix(sf.name, "?") {
			sf.optional = true
			sf.name = strings.TrimSuffix(sf.name, "?")
		}
		sf.dynamic = dynamicKey.MatchString(sf.name)
		if _, dup := seen[sf.name]; dup {
			return nil, unsupported(i18n.DuplicateField, map[string]string{"key": sf.name})
		}
		seen[sf.name] = struct{}{}
		idx := len(t.fields)
		t.fields = append(t.fields, sf)
		if sf.dynamic {
			t.dynamic = append(t.dynamic, idx)
		} else {
			t.fixed[sf.name] = idx
		}
	}
	return t, nil
}

// Fields returns the declared fields in order.
func (t *ShapeType) Fields() []Field {
	out := make([]Field, len(t.fields))
	for i, f := range t.fields {
		out[i] = Field{Key: f.key, Type: f.typ}
	}
	return out
}

// Closed reports whether the shape rejects keys outside its fixed fields.
func (t *ShapeType) Closed() bool { return len(t.dynamic) == 0 }

func (*ShapeType) Kind() Kind { return KindShape }

// Cast builds a new map. Fixed fields are cast first in declaration order,
// then every remaining input key (sorted) is claimed by the first dynamic
// field able to cast its value. Missing required fields and unclaimed keys
// fail with unsupported_operation.
func (t *ShapeType) Cast(v any) (any, error) {
	in, ok := objectEntries(v)
	if !ok {
		return nil, invalidCast(v, t)
	}
	out := make(map[string]any, len(in))
	for _, f := range t.fields {
		if f.dynamic {
			continue
		}
		val, present := in[f.name]
		if !present {
			if f.optional {
				continue
			}
			return nil, t.missing(f.name)
		}
		c, err := f.typ.Cast(val)
		if err != nil {
			return nil, wrapChild(err, f.name, i18n.InvalidCastKey,
				map[string]string{"key": f.name, "type": f.typ.Kind().String()})
		}
		out[f.name] = c
	}

	used := make([]bool, len(t.dynamic))
	for _, key := range sortedKeys(in) {
		if _, fixed := t.fixed[key]; fixed {
			continue
		}
		claimed := false
		for i, idx := range t.dynamic {
			c, err := t.fields[idx].typ.Cast(in[key])
			if err != nil {
				if IsRecoverable(err) {
					continue
				}
				return nil, PrefixPath(err, key)
			}
			out[key] = c
			used[i] = true
			claimed = true
			break
		}
		if !claimed {
			e := unsupported(i18n.UnknownKey, map[string]string{"key": key})
			e.Path = joinPointer(key, "")
			return nil, e
		}
	}
	for i, idx := range t.dynamic {
		f := t.fields[idx]
		if !used[i] && !f.optional {
			return nil, t.missing(f.name)
		}
	}
	return out, nil
}

func (*ShapeType) missing(name string) *Error {
	e := unsupported(i18n.MissingKey, map[string]string{"key": name})
	e.Path = joinPointer(name, "")
	return e
}

func (*ShapeType) IsValidType(v any) bool {
	_, ok := objectEntries(v)
	return ok
}

func (*ShapeType) DefaultValue() any { return nil }

// String renders shape({...}) with each field descriptor as a JSON string.
func (t *ShapeType) String() string {
	b := &strings.Builder{}
	b.WriteString("shape({")
	for i, f := range t.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteJSON(f.key))
		b.WriteByte(':')
		b.WriteString(quoteJSON(f.typ.String()))
	}
	b.WriteString("})")
	return b.String()
}

func (t *ShapeType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (t *ShapeType) tsType(multiline bool, level int) string {
	if len(t.fields) == 0 {
		return "{}"
	}
	entries := make([]string, len(t.fields))
	for i, f := range t.fields {
		entries[i] = tsKey(f) + ": " + f.typ.tsType(multiline, level+1)
	}
	if !multiline {
		return "{ " + strings.Join(entries, ", ") + " }"
	}
	indent := strings.Repeat("\t", level+1)
	b := &strings.Builder{}
	b.WriteString("{\n")
	for _, e := range entries {
		b.WriteString(indent)
		b.WriteString(e)
		b.WriteString(";\n")
	}
	b.WriteString(indent[1:])
	b.WriteByte('}')
	return b.String()
}

var tsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func tsKey(f shapeField) string {
	if f.dynamic {
		return "[" + f.name[1:len(f.name)-1] + ": string]"
	}
	k := f.name
	if !tsIdent.MatchString(k) {
		k = "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(k) + "'"
	}
	if f.optional {
		k += "?"
	}
	return k
}

// JSONSchema projects fixed fields to properties. Dynamic fields become
// additionalProperties; a shape without them is closed.
func (t *ShapeType) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}}
	var extra []*js.Schema
	minProps := 0
	for _, f := range t.fields {
		s, err := f.typ.JSONSchema()
		if err != nil {
			return nil, PrefixPath(err, f.name)
		}
		if !f.optional {
			minProps++
		}
		if f.dynamic {
			extra = append(extra, s)
			continue
		}
		out.Properties[f.name] = s
		if !f.optional {
			out.Required = append(out.Required, f.name)
		}
	}
	switch len(extra) {
	case 0:
		out.AdditionalProperties = false
	case 1:
		out.AdditionalProperties = extra[0]
	default:
		out.AdditionalProperties = &js.Schema{AnyOf: extra}
	}
	if minProps > len(out.Required) {
		out.MinProperties = &minProps
	}
	return out, nil
}
