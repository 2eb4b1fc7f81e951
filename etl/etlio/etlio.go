// Package etlio moves []byte iterators in and out of io writers.
package etlio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stdiopt/criteria/etl"
)

// Iter is an etl.Iter.
type Iter = etl.Iter

// YieldWriter is an io.Writer that yields a copy of each written buffer.
type YieldWriter etl.Y[[]byte]

func (yield YieldWriter) Write(data []byte) (int, error) {
	cp := append([]byte{}, data...)
	if err := yield(cp); err != nil {
		return 0, err
	}
	return len(data), nil
}

// WriteTo writes the data from the given []byte iterator to w and closes the
// iterator.
func WriteTo(ctx context.Context, it Iter, w io.Writer) error {
	defer it.Close()
	for {
		v, err := it.Next(ctx)
		if errors.Is(err, etl.EOI) {
			return nil
		}
		if err != nil {
			return err
		}

		data, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("etlio.WriteTo: expected []byte, got %T", v)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
}

// ReadAll concatenates every []byte of the iterator.
func ReadAll(ctx context.Context, it Iter) ([]byte, error) {
	ret := []byte{}
	err := etl.ConsumeContext(ctx, it, func(b []byte) error {
		ret = append(ret, b...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
