package rtype

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/apd/v3"

	js "github.com/reoring/rtype/jsonschema"
)

// IntegerType casts to int64. Strings are read like parseInt: leading blanks,
// an optional sign, an optional 0x prefix and the longest run of digits.
type IntegerType struct{}

// FloatType casts to float64. Strings are read like parseFloat.
type FloatType struct{}

// Integer and Float are the numeric singletons.
var (
	Integer = &IntegerType{}
	Float   = &FloatType{}
)

func (*IntegerType) Kind() Kind { return KindInteger }

func (t *IntegerType) Cast(v any) (any, error) {
	n, ok := castInteger(v)
	if !ok {
		return nil, invalidCast(v, t)
	}
	return n, nil
}

// IsValidType requires a number without a fractional part.
func (*IntegerType) IsValidType(v any) bool {
	if !isNumber(v) {
		return false
	}
	if d, ok := v.(decimalLiteral); ok {
		dec, ok := parseDecimal(d.String())
		if !ok {
			return false
		}
		var integ, frac apd.Decimal
		dec.Modf(&integ, &frac)
		return frac.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	}
	return true
}

func (*IntegerType) DefaultValue() any { return int64(0) }

func (*IntegerType) String() string { return "integer" }

func (t *IntegerType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*IntegerType) tsType(bool, int) string { return "number" }

func (*IntegerType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

func (*FloatType) Kind() Kind { return KindFloat }

func (t *FloatType) Cast(v any) (any, error) {
	f, ok := castFloat(v)
	if !ok {
		return nil, invalidCast(v, t)
	}
	return f, nil
}

func (*FloatType) IsValidType(v any) bool { return isNumber(v) }

func (*FloatType) DefaultValue() any { return float64(0) }

func (*FloatType) String() string { return "float" }

func (t *FloatType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*FloatType) tsType(bool, int) string { return "number" }

func (*FloatType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

// ---- numeric coercion ----

func castInteger(v any) (int64, bool) {
	if v == nil || isSequence(v) {
		return 0, false
	}
	if d, ok := v.(decimalLiteral); ok {
		return decimalToInt64(d.String())
	}
	if isText(v) {
		return parseIntPrefix(textOf(v))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	}
	return 0, false
}

func castFloat(v any) (float64, bool) {
	if v == nil || isSequence(v) {
		return 0, false
	}
	if d, ok := v.(decimalLiteral); ok {
		dec, ok := parseDecimal(d.String())
		if !ok {
			return 0, false
		}
		f, err := dec.Float64()
		return f, err == nil
	}
	if isText(v) {
		return parseFloatPrefix(textOf(v))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseDecimal reads a finite decimal literal exactly.
func parseDecimal(s string) (*apd.Decimal, bool) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Form != apd.Finite {
		return nil, false
	}
	return d, true
}

// decimalToInt64 truncates a decimal literal toward zero.
func decimalToInt64(s string) (int64, bool) {
	d, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	n, err := integ.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// parseIntPrefix mirrors parseInt(s, 10) with the 0x extension.
func parseIntPrefix(s string) (int64, bool) {
	s = trimLeadingSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigitIn(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	u, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func isDigitIn(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}

// parseFloatPrefix mirrors parseFloat: the longest prefix that forms a
// decimal literal (or Infinity) is converted.
func parseFloatPrefix(s string) (float64, bool) {
	s = trimLeadingSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// out of range literals saturate to ±Inf (or 0)
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
