package rtype

import (
	"time"

	"github.com/reoring/rtype/codec"
	js "github.com/reoring/rtype/jsonschema"
)

// DateType casts to time.Time. Numbers are milliseconds since the Unix epoch,
// strings go through codec.ParseTime and nil passes through.
type DateType struct{}

// Date is the date singleton.
var Date = &DateType{}

func (*DateType) Kind() Kind { return KindDate }

func (t *DateType) Cast(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case time.Time:
		return x.Round(0), nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return x.Round(0), nil
	}
	if isNumber(v) {
		ms, ok := castFloat(v)
		if !ok {
			return nil, invalidCast(v, t)
		}
		tm, ok := codec.FromEpochMillis(ms)
		if !ok {
			return nil, invalidCast(v, t)
		}
		return tm, nil
	}
	if isText(v) {
		tm, err := codec.ParseTime(textOf(v))
		if err != nil {
			e := invalidCast(v, t)
			e.Cause = err
			return nil, e
		}
		return tm, nil
	}
	return nil, invalidCast(v, t)
}

func (*DateType) IsValidType(v any) bool {
	switch x := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return x != nil
	}
	return false
}

// DefaultValue is the zero instant.
func (*DateType) DefaultValue() any { return time.Time{} }

func (*DateType) String() string { return "date" }

func (t *DateType) TSType(multiline bool) string { return t.tsType(multiline, 0) }

func (*DateType) tsType(bool, int) string { return "Date" }

func (*DateType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}
