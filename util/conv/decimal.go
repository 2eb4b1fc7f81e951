package conv

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cockroachdb/apd"
)

// ErrDecimal is returned when a value can't be represented as a decimal.
var ErrDecimal = errors.New("not a decimal")

// ToDecimal converts numbers, numeric strings and decimals into a
// *apd.Decimal. nil stays nil.
func ToDecimal(v any) (*apd.Decimal, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *apd.Decimal:
		return v, nil
	case apd.Decimal:
		return &v, nil
	case []byte:
		return ToDecimal(string(v))
	case string:
		d, _, err := apd.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("conv.ToDecimal: %q: %w", v, ErrDecimal)
		}
		return d, nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return apd.New(val.Int(), 0), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ToDecimal(fmt.Sprint(u))
		}
		return apd.New(int64(u), 0), nil
	case reflect.Float32, reflect.Float64:
		d, err := new(apd.Decimal).SetFloat64(val.Float())
		if err != nil {
			return nil, fmt.Errorf("conv.ToDecimal: %v: %w", v, ErrDecimal)
		}
		return d, nil
	case reflect.Pointer:
		if val.IsNil() {
			return nil, nil
		}
		return ToDecimal(val.Elem().Interface())
	case reflect.String:
		return ToDecimal(val.String())
	}
	return nil, fmt.Errorf("conv.ToDecimal: %T: %w", v, ErrDecimal)
}
