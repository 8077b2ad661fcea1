package hashset

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hash is a function that returns the hash of a value.
//
// Values that are equal must produce the same hash.
type Hash[T any] func(T) uint64

// DefaultHash returns the hash of v.
//
// The hash is computed from a canonical encoding of v in which values that are
// equal under == always encode identically. Structs and arrays are encoded
// field by field, floating-point zeros are normalized, pointers and channels
// are encoded by address and interfaces by their dynamic type and value.
func DefaultHash[T comparable](v T) uint64 {
	var buf [8]byte

	switch v := any(v).(type) {
	case string:
		return xxhash.Sum64String(v)
	case int:
		return hashUint64(&buf, uint64(v))
	case int64:
		return hashUint64(&buf, uint64(v))
	case uint64:
		return hashUint64(&buf, v)
	case float64:
		return hashUint64(&buf, canonicalFloat(v))
	}

	var d xxhash.Digest
	d.Reset()

	e := encoder{&d, buf}
	e.write(reflect.ValueOf(&v).Elem())

	return d.Sum64()
}

func hashUint64(buf *[8]byte, v uint64) uint64 {
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// canonicalFloat returns the bits of v, with -0 encoded as +0.
func canonicalFloat(v float64) uint64 {
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}

// encoder writes the canonical encoding of a comparable value to a digest.
type encoder struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (e *encoder) uint64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[:], v)
	e.d.Write(e.buf[:])
}

func (e *encoder) write(v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			e.uint64(1)
		} else {
			e.uint64(0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.uint64(uint64(v.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.uint64(v.Uint())

	case reflect.Float32, reflect.Float64:
		e.uint64(canonicalFloat(v.Float()))

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		e.uint64(canonicalFloat(real(c)))
		e.uint64(canonicalFloat(imag(c)))

	case reflect.String:
		s := v.String()
		e.uint64(uint64(len(s)))
		e.d.WriteString(s)

	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		e.uint64(uint64(v.Pointer()))

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			e.write(v.Index(i))
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			// blank fields do not take part in struct equality
			if t.Field(i).Name != "_" {
				e.write(v.Field(i))
			}
		}

	case reflect.Interface:
		if v.IsNil() {
			e.uint64(0)
			return
		}

		elem := v.Elem()
		e.uint64(1)
		e.d.WriteString(elem.Type().String())
		e.write(elem)

	default:
		// Only non-comparable kinds remain, which can only be reached as the
		// dynamic value of an interface, and comparing such values panics.
		panic("hashset: value of type " + v.Type().String() + " is not comparable")
	}
}
