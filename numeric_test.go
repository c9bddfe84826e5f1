package rtype_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/reoring/rtype"
)

func TestInteger_CastValidInputs(t *testing.T) {
	for _, in := range []any{5, "5", 5.5, "5abc", "  5", int8(5), uint(5), float32(5.9), json.Number("5.7")} {
		got, err := rtype.Integer.Cast(in)
		if err != nil {
			t.Fatalf("Cast(%#v) err: %v", in, err)
		}
		if got != int64(5) {
			t.Fatalf("Cast(%#v) = %#v, want int64(5)", in, got)
		}
	}
}

func TestInteger_CastInvalidInputs(t *testing.T) {
	for _, in := range []any{nil, "abc5", "", time.Now(), map[string]any{"a": 5}, []any{5}, map[string]int{"5": 5}, math.NaN(), math.Inf(1), true} {
		if _, err := rtype.Integer.Cast(in); rtype.CodeOf(err) != rtype.CodeInvalidCast {
			t.Fatalf("Cast(%#v) expected invalid_cast, got %v", in, err)
		}
		ok, err := rtype.CanCast(rtype.Integer, in)
		if err != nil || ok {
			t.Fatalf("CanCast(%#v) = %v, %v; want false, nil", in, ok, err)
		}
	}
}

func TestInteger_CastPrefixForms(t *testing.T) {
	cases := map[string]int64{
		"-12px":  -12,
		"+7":     7,
		"0x1F":   31,
		"42.9":   42,
		"\t\n8 9": 8,
	}
	for in, want := range cases {
		got, err := rtype.Integer.Cast(in)
		if err != nil {
			t.Fatalf("Cast(%q) err: %v", in, err)
		}
		if got != want {
			t.Fatalf("Cast(%q) = %v, want %d", in, got, want)
		}
	}
}

func TestInteger_CastOutOfRange(t *testing.T) {
	for _, in := range []any{"99999999999999999999", uint64(math.MaxUint64), 1e19, json.Number("1e30")} {
		if _, err := rtype.Integer.Cast(in); rtype.CodeOf(err) != rtype.CodeInvalidCast {
			t.Fatalf("Cast(%v) expected invalid_cast, got %v", in, err)
		}
	}
	got, err := rtype.Integer.Cast("-9223372036854775808")
	if err != nil || got != int64(math.MinInt64) {
		t.Fatalf("min int64: got %v, %v", got, err)
	}
}

func TestInteger_IsValidType(t *testing.T) {
	valid := []any{5, int64(-3), 5.0, json.Number("12"), json.Number("12.000")}
	invalid := []any{"5", 5.5, true, []any{}, nil, math.Inf(1), json.Number("1.5")}
	for _, v := range valid {
		if !rtype.Integer.IsValidType(v) {
			t.Fatalf("IsValidType(%#v) = false", v)
		}
	}
	for _, v := range invalid {
		if rtype.Integer.IsValidType(v) {
			t.Fatalf("IsValidType(%#v) = true", v)
		}
	}
}

func TestInteger_IsValid(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{5, true},
		{"5", false},
		{5.5, false},
		{true, false},
		{[]any{}, false},
	}
	for _, c := range cases {
		got, err := rtype.IsValid(rtype.Integer, c.in)
		if err != nil {
			t.Fatalf("IsValid(%#v) err: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("IsValid(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFloat_Cast(t *testing.T) {
	for _, in := range []any{"5.5", 5.5, "5.5abc", " 55e-1", json.Number("5.5"), float32(5.5)} {
		got, err := rtype.Float.Cast(in)
		if err != nil {
			t.Fatalf("Cast(%#v) err: %v", in, err)
		}
		if got != 5.5 {
			t.Fatalf("Cast(%#v) = %#v, want 5.5", in, got)
		}
	}
	for _, in := range []any{nil, "abc5", ".", "e5", time.Now(), map[string]any{"a": 5}, []any{5}, math.NaN()} {
		if _, err := rtype.Float.Cast(in); rtype.CodeOf(err) != rtype.CodeInvalidCast {
			t.Fatalf("Cast(%#v) expected invalid_cast, got %v", in, err)
		}
	}
}

func TestFloat_CastSpecialForms(t *testing.T) {
	cases := map[string]float64{
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e":        1,
		"2.5e+x":    2.5,
		".5":        0.5,
		"7.":        7,
		"1e400":     math.Inf(1),
	}
	for in, want := range cases {
		got, err := rtype.Float.Cast(in)
		if err != nil {
			t.Fatalf("Cast(%q) err: %v", in, err)
		}
		if got != want {
			t.Fatalf("Cast(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFloat_IsValid(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{5, true},
		{"5", false},
		{5.5, true},
		{true, false},
		{[]any{}, false},
	}
	for _, c := range cases {
		got, err := rtype.IsValid(rtype.Float, c.in)
		if err != nil {
			t.Fatalf("IsValid(%#v) err: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("IsValid(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNumeric_Defaults(t *testing.T) {
	if v := rtype.Integer.DefaultValue(); v != int64(0) {
		t.Fatalf("integer default: %#v", v)
	}
	if v := rtype.Float.DefaultValue(); v != float64(0) {
		t.Fatalf("float default: %#v", v)
	}
}
