package selector

import (
	"fmt"

	"github.com/stdiopt/criteria/util/conv"
)

// Transform changes a selected value before it is written to the row.
type Transform func(any) (any, error)

// Func returns a Transform from a func that can't fail.
func Func(fn func(any) any) Transform {
	return func(v any) (any, error) {
		return fn(v), nil
	}
}

// TransformString converts the value to string, nil becomes "".
func TransformString(v any) (any, error) {
	return conv.ToString(v), nil
}

// TransformDeref dereferences pointer values, nil pointers become nil.
func TransformDeref(v any) (any, error) {
	return conv.Deref(v), nil
}

// TransformInt converts numbers and numeric strings to int, nil stays nil.
func TransformInt(v any) (any, error) {
	if conv.IsNil(v) {
		return nil, nil
	}
	n, ok := conv.ConvOK[int](v)
	if !ok {
		return nil, fmt.Errorf("%T(%v) to int", v, v)
	}
	return n, nil
}

// TransformFloat64 converts numbers and numeric strings to float64, nil
// stays nil.
func TransformFloat64(v any) (any, error) {
	if conv.IsNil(v) {
		return nil, nil
	}
	n, ok := conv.ConvOK[float64](v)
	if !ok {
		return nil, fmt.Errorf("%T(%v) to float64", v, v)
	}
	return n, nil
}

// TransformDecimal converts numbers and numeric strings to *apd.Decimal, nil
// stays nil.
func TransformDecimal(v any) (any, error) {
	d, err := conv.ToDecimal(v)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return d, nil
}
