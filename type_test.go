package rtype_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/rtype"
)

func TestSaveCast(t *testing.T) {
	if got := rtype.SaveCast(rtype.Integer, "abc"); got != int64(0) {
		t.Fatalf("SaveCast fallback: %#v", got)
	}
	if got := rtype.SaveCast(rtype.Integer, "12"); got != int64(12) {
		t.Fatalf("SaveCast success: %#v", got)
	}
	if got := rtype.SaveCastOr(rtype.Integer, "abc", -1); got != -1 {
		t.Fatalf("SaveCastOr fallback: %#v", got)
	}
	en := rtype.Must(rtype.Enum("b", "a"))
	if got := rtype.SaveCast(en, "zzz"); got != "b" {
		t.Fatalf("enum fallback: %#v", got)
	}
}

func TestCompare(t *testing.T) {
	a := rtype.Must(rtype.Shape(rtype.F("x", rtype.Integer)))
	b := rtype.Must(rtype.Shape(rtype.F("x", rtype.Integer)))
	c := rtype.Must(rtype.Shape(rtype.F("x?", rtype.Integer)))
	if !rtype.Compare(a, a) || !rtype.Compare(a, b) {
		t.Fatalf("structurally equal shapes must compare equal")
	}
	if rtype.Compare(a, c) || rtype.Compare(rtype.Integer, rtype.Float) {
		t.Fatalf("different descriptors must not compare equal")
	}
	if rtype.Compare(a, nil) || !rtype.Compare(nil, nil) {
		t.Fatalf("nil handling")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Must should panic on error")
		}
	}()
	rtype.Must(rtype.Union())
}

func TestIsNil(t *testing.T) {
	if !rtype.IsNil(nil) || !rtype.IsNil((*rtype.ShapeType)(nil)) || !rtype.IsNil((*rtype.IntegerType)(nil)) {
		t.Fatalf("nil and typed nil pointers must be nil types")
	}
	if rtype.IsNil(rtype.Integer) {
		t.Fatalf("singletons are not nil")
	}
	if _, err := rtype.ArrayOf((*rtype.UnionType)(nil)); rtype.CodeOf(err) != rtype.CodeUnsupportedOperation {
		t.Fatalf("typed nil element must be rejected: %v", err)
	}
}

func TestKind_String(t *testing.T) {
	cases := []struct {
		typ  rtype.Type
		want string
	}{
		{rtype.Any, "any"},
		{rtype.Integer, "integer"},
		{rtype.Float, "float"},
		{rtype.String, "string"},
		{rtype.Boolean, "boolean"},
		{rtype.Date, "date"},
		{rtype.Object, "object"},
		{rtype.Must(rtype.ArrayOf(rtype.Any)), "array"},
		{rtype.Must(rtype.Enum("a")), "enum"},
		{rtype.Must(rtype.Union(rtype.Any)), "union"},
		{rtype.Must(rtype.Shape()), "shape"},
		{rtype.Must(rtype.InstanceOf(rtype.ClassOf[point]())), "instanceof"},
	}
	for _, c := range cases {
		if got := c.typ.Kind().String(); got != c.want {
			t.Fatalf("%T kind = %q, want %q", c.typ, got, c.want)
		}
	}
	if rtype.Kind(99).String() != "unknown" {
		t.Fatalf("out of range kind")
	}
}

// Casting a value that is already valid returns it unchanged; dates keep
// their instant.
func TestCast_Idempotent(t *testing.T) {
	shape := rtype.Must(rtype.Shape(
		rtype.F("n", rtype.Integer),
		rtype.F("tags", rtype.Must(rtype.ArrayOf(rtype.String))),
		rtype.F("[rest]?", rtype.Boolean),
	))
	cases := []struct {
		typ rtype.Type
		in  any
	}{
		{rtype.Integer, int64(5)},
		{rtype.Float, 2.5},
		{rtype.String, "x"},
		{rtype.Boolean, true},
		{rtype.Object, map[string]any{"a": 1}},
		{rtype.Any, []any{1, "a"}},
		{rtype.Must(rtype.Enum("a", "b")), "b"},
		{rtype.Must(rtype.Union(rtype.Integer, rtype.String)), int64(3)},
		{rtype.Must(rtype.ArrayOf(rtype.Float)), []any{1.5, 2.0}},
		{shape, map[string]any{"n": int64(1), "tags": []any{"a"}, "flag": false}},
	}
	for _, c := range cases {
		ok, err := rtype.IsValid(c.typ, c.in)
		if err != nil || !ok {
			t.Fatalf("%s: IsValid(%#v) = %v, %v", c.typ, c.in, ok, err)
		}
		got, err := c.typ.Cast(c.in)
		if err != nil {
			t.Fatalf("%s: Cast(%#v): %v", c.typ, c.in, err)
		}
		if diff := cmp.Diff(c.in, got); diff != "" {
			t.Fatalf("%s: cast changed a valid value (-want +got):\n%s", c.typ, diff)
		}
	}

	now := time.Now()
	got, err := rtype.Date.Cast(now)
	if err != nil || !got.(time.Time).Equal(now) {
		t.Fatalf("date cast must keep the instant: %v, %v", got, err)
	}
}
