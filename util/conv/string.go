package conv

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cockroachdb/apd"
)

// ToString returns the string form of v, nil and typed nils (pointers, maps,
// slices...) become "".
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case *apd.Decimal:
		if v == nil {
			return ""
		}
		return v.Text('f')
	case fmt.Stringer:
		if isNil(v) {
			return ""
		}
		return v.String()
	}
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return ""
		}
		return ToString(val.Elem().Interface())
	}
	if isNil(v) {
		return ""
	}
	return fmt.Sprint(v)
}

// IsNil returns true if v is nil or a typed nil pointer, map, slice, func,
// chan or interface.
func IsNil(v any) bool {
	return v == nil || isNil(v)
}

func isNil(v any) bool {
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return val.IsNil()
	}
	return false
}
