// Package model binds rtype types to named fields. A Schema lists the
// fields; a Record holds values that were cast on every assignment.
package model

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/reoring/rtype"
	"github.com/reoring/rtype/i18n"
)

type field struct {
	name       string
	typ        rtype.Type
	nullable   bool
	hasInitial bool
	initial    any
	zero       bool
}

// Option customizes a field.
type Option func(*field)

// Nullable lets the field hold nil without casting.
func Nullable() Option { return func(f *field) { f.nullable = true } }

// Initial sets the value assigned (through Cast) when a record is created.
func Initial(v any) Option {
	return func(f *field) {
		f.hasInitial = true
		f.initial = v
	}
}

// ZeroValue initializes the field with its type's DefaultValue.
func ZeroValue() Option { return func(f *field) { f.zero = true } }

// Builder collects field declarations.
type Builder struct {
	fields []field
	strict bool
}

// New starts an empty schema.
func New() *Builder { return &Builder{} }

// Field declares name with type t.
func (b *Builder) Field(name string, t rtype.Type, opts ...Option) *Builder {
	f := field{name: name, typ: t}
	for _, o := range opts {
		o(&f)
	}
	b.fields = append(b.fields, f)
	return b
}

// Strict rejects undeclared keys instead of storing them verbatim.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

// Build validates the declarations.
func (b *Builder) Build() (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(b.fields)), strict: b.strict}
	for _, f := range b.fields {
		if rtype.IsNil(f.typ) {
			return nil, declError(i18n.NotAType, map[string]string{"value": "null"}, f.name)
		}
		if _, dup := s.index[f.name]; dup {
			return nil, declError(i18n.DuplicateField, map[string]string{"key": f.name}, f.name)
		}
		s.index[f.name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

func declError(msgKey string, params map[string]string, name string) error {
	return rtype.PrefixPath(&rtype.Error{
		Code:    rtype.CodeUnsupportedOperation,
		Message: i18n.T(msgKey, params),
		Params:  params,
	}, name)
}

// Schema is an immutable list of typed fields.
type Schema struct {
	fields []field
	index  map[string]int
	strict bool
}

// Fields returns the declared field names in order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Type returns the type of a declared field.
func (s *Schema) Type(name string) (rtype.Type, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].typ, true
}

// New creates a record with initial values applied.
func (s *Schema) New() (*Record, error) {
	r := &Record{schema: s, set: make([]bool, len(s.fields)), values: make([]any, len(s.fields)), extra: map[string]any{}}
	for i, f := range s.fields {
		switch {
		case f.hasInitial:
			if err := r.assign(i, f.initial); err != nil {
				return nil, err
			}
		case f.zero:
			r.values[i] = f.typ.DefaultValue()
			r.set[i] = true
		}
	}
	return r, nil
}

// Create builds a record and assigns every key of data in sorted order.
func (s *Schema) Create(data map[string]any) (*Record, error) {
	r, err := s.New()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.Set(k, data[k]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Record is a set of field values. It is not safe for concurrent mutation.
type Record struct {
	schema     *Schema
	values     []any
	set        []bool
	extra      map[string]any
	extraOrder []string
}

// Set assigns v to name. Declared fields cast v with their type; a nullable
// field takes nil as is. Undeclared keys are stored verbatim unless the
// schema is strict.
func (r *Record) Set(name string, v any) error {
	if i, ok := r.schema.index[name]; ok {
		return r.assign(i, v)
	}
	if r.schema.strict {
		return declError(i18n.UnknownField, map[string]string{"key": name}, name)
	}
	if _, seen := r.extra[name]; !seen {
		r.extraOrder = append(r.extraOrder, name)
	}
	r.extra[name] = v
	return nil
}

func (r *Record) assign(i int, v any) error {
	f := r.schema.fields[i]
	if v == nil && f.nullable {
		r.values[i], r.set[i] = nil, true
		return nil
	}
	c, err := f.typ.Cast(v)
	if err != nil {
		return rtype.PrefixPath(err, f.name)
	}
	r.values[i], r.set[i] = c, true
	return nil
}

// Get returns the value of name and whether it is set.
func (r *Record) Get(name string) (any, bool) {
	if i, ok := r.schema.index[name]; ok {
		return r.values[i], r.set[i]
	}
	v, ok := r.extra[name]
	return v, ok
}

// Reset unsets a declared field or removes an undeclared key.
func (r *Record) Reset(name string) {
	if i, ok := r.schema.index[name]; ok {
		r.values[i], r.set[i] = nil, false
		return
	}
	if _, ok := r.extra[name]; !ok {
		return
	}
	delete(r.extra, name)
	for i, k := range r.extraOrder {
		if k == name {
			r.extraOrder = append(r.extraOrder[:i], r.extraOrder[i+1:]...)
			break
		}
	}
}

// Map returns the set values keyed by name.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values)+len(r.extra))
	r.each(func(k string, v any) { out[k] = v })
	return out
}

func (r *Record) each(fn func(string, any)) {
	for i, f := range r.schema.fields {
		if r.set[i] {
			fn(f.name, r.values[i])
		}
	}
	for _, k := range r.extraOrder {
		fn(k, r.extra[k])
	}
}

// MarshalJSON writes declared fields in declaration order (unset ones are
// omitted), then undeclared keys in assignment order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	r.each(func(k string, v any) {
		if err != nil {
			return
		}
		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return
		}
		if vb, err = json.Marshal(v); err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
