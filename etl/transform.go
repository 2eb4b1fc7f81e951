package etl

import (
	"context"
	"fmt"
)

// Map returns an interator that transforms the values of the source
// iterator using the func fn.
func Map[Ti, To any](it Iter, fn func(Ti) To) Iter {
	return MakeIter(Custom[To]{
		Next: func(ctx context.Context) (To, error) {
			var z To
			vv, err := it.Next(ctx)
			if err != nil {
				return z, err
			}
			v, ok := vv.(Ti)
			if !ok {
				return z, fmt.Errorf("etl.Map: type mismatch: %T", vv)
			}
			return fn(v), nil
		},
		Close: it.Close,
	})
}

// Filter returns an iterator that only passes the values for which fn
// returns true.
func Filter[T any](it Iter, fn func(T) bool) Iter {
	return MakeIter(Custom[T]{
		Next: func(ctx context.Context) (T, error) {
			var z T
			for {
				vv, err := it.Next(ctx)
				if err != nil {
					return z, err
				}
				v, ok := vv.(T)
				if !ok {
					return z, fmt.Errorf("etl.Filter: type mismatch: %T", vv)
				}
				if fn(v) {
					return v, nil
				}
			}
		},
		Close: it.Close,
	})
}
