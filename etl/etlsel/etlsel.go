// Package etlsel runs selection passes over etl iterators.
package etlsel

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/prop"
	"github.com/stdiopt/criteria/selector"
)

// Iter is an etl.Iter.
type Iter = etl.Iter

type options struct {
	fields    prop.Fields
	fieldsOf  bool
	batchSize int
	workers   int
}

// OptFunc configures a projection.
type OptFunc func(*options)

// WithFields sets the accessor table used by simple field selectors.
func WithFields(f prop.Fields) OptFunc {
	return func(o *options) {
		o.fields = f
	}
}

// WithFieldsOf builds the accessor table from the type of the first item.
func WithFieldsOf() OptFunc {
	return func(o *options) {
		o.fieldsOf = true
	}
}

// WithBatchSize sets how many items go in each selection pass of
// ProjectBatches.
func WithBatchSize(n int) OptFunc {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithWorkers sets how many batches ProjectBatches projects concurrently.
func WithWorkers(n int) OptFunc {
	return func(o *options) {
		o.workers = n
	}
}

func makeOptions(opts ...OptFunc) options {
	o := options{
		batchSize: 1024,
		workers:   1,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.batchSize < 1 {
		o.batchSize = 1
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

func (o *options) fieldsFor(items []any) prop.Fields {
	if o.fields != nil || !o.fieldsOf || len(items) == 0 {
		return o.fields
	}
	return prop.FieldsOf(items[0])
}

// Project consumes every item of it in a single selection pass and returns
// an iterator of the resulting drow.Row.
func Project(it Iter, sels []selector.Selector, opts ...OptFunc) Iter {
	o := makeOptions(opts...)
	return etl.MakeGen(etl.Gen[drow.Row]{
		Run: func(ctx context.Context, yield etl.Y[drow.Row]) error {
			items, err := etl.CollectContext[any](ctx, it)
			if err != nil {
				return fmt.Errorf("etlsel.Project: %w", err)
			}
			rows, err := selector.Perform(sels, items, o.fieldsFor(items))
			if err != nil {
				return fmt.Errorf("etlsel.Project: %w", err)
			}
			for _, r := range rows {
				if err := yield(r); err != nil {
					return err
				}
			}
			return nil
		},
		Close: it.Close,
	})
}

// ProjectBatches splits the items of it in batches and runs a selection pass
// per batch, row ids restart on each batch. With WithWorkers batches are
// projected concurrently, rows are yielded in item order regardless and the
// selectors must be safe to share between passes.
func ProjectBatches(it Iter, sels []selector.Selector, opts ...OptFunc) Iter {
	o := makeOptions(opts...)
	return etl.MakeGen(etl.Gen[drow.Row]{
		Run: func(ctx context.Context, yield etl.Y[drow.Row]) error {
			var fields prop.Fields
			for done := false; !done; {
				var batches [][]any
				for len(batches) < o.workers {
					b, err := etl.Take[any](ctx, it, o.batchSize)
					if err != nil && !errors.Is(err, etl.EOI) {
						return fmt.Errorf("etlsel.ProjectBatches: %w", err)
					}
					if len(b) > 0 {
						batches = append(batches, b)
					}
					if err != nil {
						done = true
						break
					}
				}
				if len(batches) == 0 {
					return nil
				}
				if fields == nil {
					fields = o.fieldsFor(batches[0])
				}

				results := make([][]drow.Row, len(batches))
				eg := errgroup.Group{}
				for i, b := range batches {
					i, b := i, b
					eg.Go(func() error {
						rows, err := selector.Perform(sels, b, fields)
						if err != nil {
							return err
						}
						results[i] = rows
						return nil
					})
				}
				if err := eg.Wait(); err != nil {
					return fmt.Errorf("etlsel.ProjectBatches: %w", err)
				}
				for _, rows := range results {
					for _, r := range rows {
						if err := yield(r); err != nil {
							return err
						}
					}
				}
			}
			return nil
		},
		Close: it.Close,
	})
}
