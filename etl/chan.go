package etl

import (
	"context"
	"io"
	"sync"
)

// Y yield func passed to generators.
type Y[T any] func(T) error

type msg[T any] struct {
	value T
	err   error
}

// Gen is a generator, Run yields values until it returns.
type Gen[T any] struct {
	Run   func(context.Context, Y[T]) error
	Close func() error
}

// MakeGen creates an iterator that runs the generator in a goroutine on the
// first Next. An error returned by Run is returned by Next once all yielded
// values were consumed.
func MakeGen[T any](g Gen[T]) Iter {
	ch := make(chan msg[T])
	ictx, cancel := context.WithCancelCause(context.Background())

	yield := func(value T) error {
		select {
		case <-ictx.Done():
			return context.Cause(ictx)
		case ch <- msg[T]{value: value}:
			return nil
		}
	}

	once := sync.Once{}
	start := func() {
		go func() {
			defer close(ch)
			if err := g.Run(ictx, yield); err != nil {
				select {
				case <-ictx.Done():
				case ch <- msg[T]{err: err}:
				}
			}
		}()
	}

	return MakeIter(Custom[T]{
		Next: func(ctx context.Context) (T, error) {
			once.Do(start)
			var z T
			select {
			case <-ctx.Done():
				cancel(ctx.Err())
				return z, ctx.Err()
			case <-ictx.Done():
				return z, context.Cause(ictx)
			case m, ok := <-ch:
				if !ok {
					return z, io.EOF
				}
				return m.value, m.err
			}
		},
		Close: func() error {
			var err error
			if g.Close != nil {
				err = g.Close()
			}
			cancel(ErrClosed)
			return err
		},
	})
}
