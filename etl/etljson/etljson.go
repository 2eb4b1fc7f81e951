// Package etljson encodes iterator values as json.
package etljson

import (
	"context"
	"encoding/json"

	"github.com/stdiopt/criteria/etl"
)

// Iter alias to etl.Iter
type Iter = etl.Iter

type encodeOptions struct {
	Array bool
}

// EncodeOptFunc configures Encode.
type EncodeOptFunc func(*encodeOptions)

// WithArray wraps the output in a json array instead of one value per line.
func WithArray() EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Array = true
	}
}

func makeEncodeOptions(opts ...EncodeOptFunc) encodeOptions {
	o := encodeOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Encode encodes each value of it, rows keep their field order. By default
// each value is written on its own line.
func Encode(it Iter, opts ...EncodeOptFunc) Iter {
	o := makeEncodeOptions(opts...)
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			n := 0
			err := etl.ConsumeContext(ctx, it, func(v any) error {
				data, err := json.Marshal(v)
				if err != nil {
					return err
				}
				switch {
				case !o.Array:
					data = append(data, '\n')
				case n == 0:
					data = append([]byte{'['}, data...)
				default:
					data = append([]byte{','}, data...)
				}
				n++
				return yield(data)
			})
			if err != nil {
				return err
			}
			switch {
			case o.Array && n == 0:
				return yield([]byte("[]"))
			case o.Array:
				return yield([]byte("]"))
			}
			return nil
		},
		Close: it.Close,
	})
}
