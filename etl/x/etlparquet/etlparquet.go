// Package etlparquet writes rows as parquet and reads them back.
package etlparquet

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	goparquet "github.com/fraugster/parquet-go"
	"github.com/fraugster/parquet-go/floor"
	"github.com/fraugster/parquet-go/parquet"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlio"
)

type (
	// Iter is an etl.Iter.
	Iter = etl.Iter
	// Row is a drow.Row.
	Row = drow.Row
)

type encodeOptions struct {
	Codec parquet.CompressionCodec
	Name  string
}

// EncodeOptFunc configures Encode.
type EncodeOptFunc func(*encodeOptions)

// WithCompression sets the compression codec, defaults to snappy.
func WithCompression(c parquet.CompressionCodec) EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Codec = c
	}
}

// WithSchemaName sets the name of the root schema element.
func WithSchemaName(name string) EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Name = name
	}
}

func makeEncodeOptions(opts ...EncodeOptFunc) encodeOptions {
	o := encodeOptions{
		Codec: parquet.CompressionCodec_SNAPPY,
		Name:  "row",
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Encode consumes a drow.Row iterator and outputs a parquet file as []byte.
// The schema comes from the first row, every column is optional and later
// rows are converted to the column types.
func Encode(it Iter, opts ...EncodeOptFunc) Iter {
	o := makeEncodeOptions(opts...)
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			v, err := it.Next(ctx)
			if errors.Is(err, etl.EOI) {
				return nil
			}
			if err != nil {
				return err
			}
			first, ok := v.(Row)
			if !ok {
				return fmt.Errorf("etlparquet.Encode: expected drow.Row, got %T", v)
			}
			schema, err := schemaFrom(o.Name, first)
			if err != nil {
				return fmt.Errorf("etlparquet.Encode: %w", err)
			}

			pw := goparquet.NewFileWriter(etlio.YieldWriter(yield),
				goparquet.WithSchemaDefinition(schema),
				goparquet.WithCompressionCodec(o.Codec),
			)
			fw := floor.NewWriter(pw)

			m := &rowMarshaler{schema: schema}
			write := func(r Row) error {
				m.row = r
				return fw.Write(m)
			}
			if err := write(first); err != nil {
				return fmt.Errorf("etlparquet.Encode: %w", err)
			}
			if err := etl.ConsumeContext(ctx, it, write); err != nil {
				return fmt.Errorf("etlparquet.Encode: %w", err)
			}
			return fw.Close()
		},
		Close: it.Close,
	})
}

// Decode reads a parquet file from a []byte iterator and yields each record
// as a drow.Row in schema column order.
func Decode(it Iter) Iter {
	return etl.MakeGen(etl.Gen[Row]{
		Run: func(ctx context.Context, yield etl.Y[Row]) error {
			data, err := etlio.ReadAll(ctx, it)
			if err != nil {
				return err
			}

			pr, err := goparquet.NewFileReader(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("etlparquet.Decode: %w", err)
			}
			fr := floor.NewReader(pr)
			defer fr.Close()

			u := &rowUnmarshaler{schema: pr.GetSchemaDefinition()}
			for fr.Next() {
				u.row = nil
				if err := fr.Scan(u); err != nil {
					return fmt.Errorf("etlparquet.Decode: %w", err)
				}
				if err := yield(u.row); err != nil {
					return err
				}
			}
			return fr.Err()
		},
		Close: it.Close,
	})
}
