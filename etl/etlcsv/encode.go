package etlcsv

import (
	"context"
	"encoding/csv"

	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlio"
)

type encodeOptions struct {
	Comma  rune
	Header bool
}

// EncodeOptFunc configures Encode.
type EncodeOptFunc func(*encodeOptions)

// WithEncodeComma sets the field delimiter.
func WithEncodeComma(c rune) EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Comma = c
	}
}

// WithEncodeNoHeader disables the header record.
func WithEncodeNoHeader() EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Header = false
	}
}

func makeEncodeOptions(opts ...EncodeOptFunc) encodeOptions {
	o := encodeOptions{
		Comma:  ',',
		Header: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Encode consumes a drow.Row iterator and produces csv as []byte. The header
// and the column order come from the first row, later rows are written in
// that column order and missing fields are empty.
func Encode(it Iter, opts ...EncodeOptFunc) Iter {
	o := makeEncodeOptions(opts...)
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			cw := csv.NewWriter(etlio.YieldWriter(yield))
			cw.Comma = o.Comma

			var cols []string
			err := etl.ConsumeContext(ctx, it, func(r Row) error {
				if cols == nil {
					cols = r.Columns()
					if o.Header {
						if err := cw.Write(cols); err != nil {
							return err
						}
					}
				}
				vals := make([]string, len(cols))
				for i, c := range cols {
					if j := r.Index(c); j >= 0 {
						vals[i] = r[j].String()
					}
				}
				return cw.Write(vals)
			})
			if err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		},
		Close: it.Close,
	})
}
