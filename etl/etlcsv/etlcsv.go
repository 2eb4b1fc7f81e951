// Package etlcsv reads csv data into rows and writes rows as csv.
package etlcsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Iter is an etl.Iter
	Iter = etl.Iter
)

type decodeOptions struct {
	Comma  rune
	Header bool
}

// DecodeOptFunc configures Decode.
type DecodeOptFunc func(*decodeOptions)

// WithDecodeComma sets the field delimiter.
func WithDecodeComma(c rune) DecodeOptFunc {
	return func(o *decodeOptions) {
		o.Comma = c
	}
}

// WithDecodeHeader sets whether the first record holds the column names,
// without a header columns are named col1, col2...
func WithDecodeHeader(v bool) DecodeOptFunc {
	return func(o *decodeOptions) {
		o.Header = v
	}
}

func makeDecodeOptions(opts ...DecodeOptFunc) decodeOptions {
	o := decodeOptions{
		Comma:  ',',
		Header: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Decode returns an iterator of rows read from r, values are trimmed
// strings.
func Decode(r io.Reader, opts ...DecodeOptFunc) Iter {
	o := makeDecodeOptions(opts...)

	cr := csv.NewReader(r)
	cr.Comma = o.Comma
	cr.FieldsPerRecord = -1

	var cols []string
	return etl.MakeIter(etl.Custom[Row]{
		Next: func(ctx context.Context) (Row, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for {
				rec, err := cr.Read()
				if errors.Is(err, io.EOF) {
					return nil, etl.EOI
				}
				if err != nil {
					return nil, fmt.Errorf("etlcsv.Decode: %w", err)
				}
				if cols == nil {
					if o.Header {
						cols = rec
						continue
					}
					cols = make([]string, len(rec))
					for i := range rec {
						cols[i] = fmt.Sprintf("col%d", i+1)
					}
				}
				return makeRow(cols, rec)
			}
		},
	})
}

func makeRow(cols, rec []string) (Row, error) {
	if len(rec) > len(cols) {
		return nil, fmt.Errorf("etlcsv.Decode: record has %d fields, header has %d", len(rec), len(cols))
	}
	row := make(Row, len(rec))
	for i, v := range rec {
		row[i] = drow.F(cols[i], strings.TrimSpace(v))
	}
	return row, nil
}
