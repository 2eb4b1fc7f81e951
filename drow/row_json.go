package drow

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/apd"
)

// MarshalJSON encodes the row as an object keeping the field order.
func (r Row) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}

	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		data, err := marshalValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("drow.MarshalJSON: field %q: %w", f.Name, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	switch v := v.(type) {
	// decimals are written as json numbers without going through float64
	case *apd.Decimal:
		if v == nil {
			return []byte("null"), nil
		}
		return []byte(v.Text('f')), nil
	case apd.Decimal:
		return []byte(v.Text('f')), nil
	}
	return json.Marshal(v)
}
