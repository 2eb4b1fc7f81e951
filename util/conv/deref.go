package conv

import (
	"reflect"
)

// Deref follows pointers until it reaches a non pointer value, a nil pointer
// dereferences to nil.
func Deref(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case *string:
		return deref(v)
	case *int:
		return deref(v)
	case *int64:
		return deref(v)
	case *float64:
		return deref(v)
	case *bool:
		return deref(v)
	}
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	return val.Interface()
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
