package drow

import (
	"github.com/cockroachdb/apd"
	"github.com/stdiopt/criteria/util/conv"
)

// Field is a single named value in a row.
type Field struct {
	Name  string
	Value any
}

// F creates a new field.
func F(name string, v any) Field {
	return Field{Name: name, Value: v}
}

// String returns the string representation of the field, "" for nil.
func (f Field) String() string { return conv.ToString(f.Value) }

// Int returns the int representation of the field or zero if it can't be converted
func (f Field) Int() int { return conv.Conv(0, f.Value) }

// Int64 returns the int64 representation of the field or zero if it can't be converted
func (f Field) Int64() int64 { return conv.Conv(int64(0), f.Value) }

// Float64 returns the float64 representation of the field or zero if it can't be converted
func (f Field) Float64() float64 { return conv.Conv(float64(0), f.Value) }

// Decimal returns the field as a decimal, nil if it is nil or not numeric.
func (f Field) Decimal() *apd.Decimal {
	d, err := conv.ToDecimal(f.Value)
	if err != nil {
		return nil
	}
	return d
}

// eq compares fields recovering from non comparable values.
func (f Field) eq(o Field) (ret bool) {
	defer func() {
		if p := recover(); p != nil {
			ret = false
		}
	}()
	return f == o
}
