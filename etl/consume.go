package etl

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed is returned by Next on a generator that was closed.
var ErrClosed = errors.New("iterator closed")

// ConsumeContext calls fn for every value of it until it is exhausted.
func ConsumeContext[T any](ctx context.Context, it Iter, fn func(T) error) error {
	for {
		vv, err := it.Next(ctx)
		if errors.Is(err, EOI) {
			return nil
		}
		if err != nil {
			return err
		}

		v, ok := as[T](vv)
		if !ok {
			return fmt.Errorf("etl.Consume: type mismatch: %T", vv)
		}
		if fn == nil {
			continue
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Consume iterates over the given iterator and calls fn for each value.
func Consume[T any](it Iter, fn func(T) error) error {
	return ConsumeContext(context.Background(), it, fn)
}

// CollectContext collects all iterator values into a slice.
func CollectContext[T any](ctx context.Context, it Iter) ([]T, error) {
	xs := []T{}
	err := ConsumeContext(ctx, it, func(v T) error {
		xs = append(xs, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return xs, nil
}

// Collect collects all iterator values into a slice.
func Collect[T any](it Iter) ([]T, error) {
	return CollectContext[T](context.Background(), it)
}

// Take returns up to n values from it, the returned error is EOI when the
// iterator ended, possibly with a partial slice.
func Take[T any](ctx context.Context, it Iter, n int) ([]T, error) {
	res := make([]T, 0, n)
	for i := 0; i < n; i++ {
		vv, err := it.Next(ctx)
		if err != nil {
			return res, err
		}
		v, ok := as[T](vv)
		if !ok {
			return res, fmt.Errorf("etl.Take: type mismatch: %T", vv)
		}
		res = append(res, v)
	}
	return res, nil
}

// as asserts vv to T, a nil value is accepted when T is an interface type.
func as[T any](vv any) (T, bool) {
	if vv == nil {
		var z T
		return z, any(z) == nil
	}
	v, ok := vv.(T)
	return v, ok
}
