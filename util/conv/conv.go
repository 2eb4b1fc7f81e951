// Package conv converts selected values between the shapes rows and
// transforms need.
package conv

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd"
	"golang.org/x/exp/constraints"
)

// Numbers is the set of types Conv can produce.
type Numbers interface {
	constraints.Integer | constraints.Float
}

// Conv converts v to T, returning def when v is nil or can't be converted.
// Narrowing conversions may lose data i.e converting int32 to int8.
func Conv[T Numbers](def T, v any) T {
	n, ok := number[T](v)
	if !ok {
		return def
	}
	return n
}

// ConvOK is like Conv but reports whether the conversion happened.
func ConvOK[T Numbers](v any) (T, bool) {
	return number[T](v)
}

func number[T Numbers](v any) (T, bool) {
	var z T
	switch v := v.(type) {
	case nil:
		return z, false
	case T:
		return v, true
	case []byte:
		return number[T](string(v))
	case string:
		return parse[T](strings.TrimSpace(v))
	case *apd.Decimal:
		if v == nil {
			return z, false
		}
		return parse[T](v.Text('f'))
	case apd.Decimal:
		return parse[T](v.Text('f'))
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return T(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return T(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return T(val.Float()), true
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return z, false
		}
		return number[T](val.Elem().Interface())
	case reflect.String:
		return parse[T](strings.TrimSpace(val.String()))
	}
	return z, false
}

func parse[T Numbers](s string) (T, bool) {
	var z T
	switch any(z).(type) {
	case uint, uint8, uint16, uint32, uint64, uintptr:
		r, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return z, false
		}
		return T(r), true
	case int, int8, int16, int32, int64:
		r, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return T(r), true
		}
		// "42.0" is still a valid integer for a selected column.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return z, false
		}
		return T(f), true
	case float32, float64:
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return z, false
		}
		return T(r), true
	}
	return z, false
}
