package telemetry

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slog"
)

// Attr is a telemetry attribute.
type Attr struct {
	typ attrType
	key string
	str string
	num uint64
}

// String returns a string attribute.
func String[T ~string](k string, v T) Attr {
	return Attr{
		typ: attrTypeString,
		key: k,
		str: string(v),
	}
}

// Stringer returns a string attribute. The value is the result of calling
// v.String().
func Stringer(k string, v fmt.Stringer) Attr {
	return String(k, v.String())
}

// Type returns a string attribute set to the name of T.
func Type[T any](k string) Attr {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return String(k, t.String())
}

// Bool returns a boolean attribute.
func Bool[T ~bool](k string, v T) Attr {
	var n uint64
	if v {
		n = 1
	}

	return Attr{
		typ: attrTypeBool,
		key: k,
		num: n,
	}
}

// Int returns an int64 attribute.
func Int[T constraints.Integer](k string, v T) Attr {
	return Attr{
		typ: attrTypeInt64,
		key: k,
		num: uint64(v),
	}
}

// Float returns a float64 attribute.
func Float[T constraints.Float](k string, v T) Attr {
	return Attr{
		typ: attrTypeFloat64,
		key: k,
		num: math.Float64bits(float64(v)),
	}
}

// Duration returns a string attribute containing v in human readable format.
func Duration(k string, v time.Duration) Attr {
	return String(k, v.String())
}

func (a Attr) asAttrKeyValue() (attribute.KeyValue, bool) {
	switch a.typ {
	case attrTypeNone:
		return attribute.KeyValue{}, false
	case attrTypeString:
		return attribute.String(a.key, a.str), true
	case attrTypeBool:
		return attribute.Bool(a.key, a.num != 0), true
	case attrTypeInt64:
		return attribute.Int64(a.key, int64(a.num)), true
	case attrTypeFloat64:
		return attribute.Float64(a.key, math.Float64frombits(a.num)), true
	default:
		panic("unknown attribute type")
	}
}

func (a Attr) asLoggerAttr() (slog.Attr, bool) {
	switch a.typ {
	case attrTypeNone:
		return slog.Attr{}, false
	case attrTypeString:
		return slog.String(a.key, a.str), true
	case attrTypeBool:
		return slog.Bool(a.key, a.num != 0), true
	case attrTypeInt64:
		return slog.Int64(a.key, int64(a.num)), true
	case attrTypeFloat64:
		return slog.Float64(a.key, math.Float64frombits(a.num)), true
	default:
		panic("unknown attribute type")
	}
}

type attrType uint8

const (
	attrTypeNone attrType = iota
	attrTypeString
	attrTypeBool
	attrTypeInt64
	attrTypeFloat64
)

func asAttrKeyValues(attrs []Attr) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(attrs))

	for _, attr := range attrs {
		if kv, ok := attr.asAttrKeyValue(); ok {
			kvs = append(kvs, kv)
		}
	}

	return kvs
}

func asLoggerArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))

	for _, attr := range attrs {
		if a, ok := attr.asLoggerAttr(); ok {
			args = append(args, a)
		}
	}

	return args
}
