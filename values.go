package rtype

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/rtype/codec"
)

// decimalLiteral matches json.Number and compatible decimal literal types.
type decimalLiteral interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

// isSequence reports whether v is a slice or array (strings and byte slices
// holding text are not sequences).
func isSequence(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]any); ok {
		return true
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// sequenceValues returns the elements of a sequence.
func sequenceValues(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// objectEntries returns the entries of a map keyed by strings, or ok=false.
func objectEntries(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isNumber reports whether v is a Go numeric value or a decimal literal.
func isNumber(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(decimalLiteral); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// isText reports whether v is a string (named string types included, decimal
// literals excluded).
func isText(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}
	if v == nil {
		return false
	}
	if _, ok := v.(decimalLiteral); ok {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.String
}

func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reflect.ValueOf(v).String()
}

// truthy follows the usual dynamic-language truthiness: nil, false, zero,
// NaN and the empty string are false.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	case decimalLiteral:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// formatNumber renders a float the way a JavaScript engine does for the
// common range: integral values without a fraction, no exponent between 1e-6
// and 1e21.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// stringify converts any dynamic value to its string form.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return codec.FormatTime(x)
	case *time.Time:
		if x == nil {
			return "null"
		}
		return codec.FormatTime(*x)
	case decimalLiteral:
		return x.String()
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = stringify(e)
			}
		}
		return strings.Join(parts, ",")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatNumber(rv.Float())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		return stringify(sequenceValues(v))
	case reflect.Map, reflect.Struct, reflect.Pointer:
		if b, err := marshalCompact(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// describeValue renders v for error messages.
func describeValue(v any) string {
	if v == nil {
		return "null"
	}
	if isText(v) {
		return strconv.Quote(textOf(v))
	}
	s := stringify(v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// quoteJSON renders s as a JSON string literal without HTML escaping.
func quoteJSON(s string) string {
	b, err := marshalCompact(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}
