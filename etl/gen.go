package etl

import "context"

// ErrIter is an iterator that always returns err.
func ErrIter(err error) Iter {
	return MakeIter(Custom[any]{
		Next: func(context.Context) (any, error) { return nil, err },
	})
}

// Values returns an iterator over vs.
func Values[T any](vs ...T) Iter {
	return MakeIter(Custom[T]{
		Next: func(context.Context) (T, error) {
			var z T
			if len(vs) == 0 {
				return z, EOI
			}
			v := vs[0]
			vs = vs[1:]
			return v, nil
		},
	})
}
