package selector

import (
	"fmt"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/prop"
	"github.com/stdiopt/criteria/util/conv"
)

// Selects returns the selectors as a slice.
func Selects(s ...Selector) []Selector {
	return s
}

// Perform builds one row per item by running every selector on it in order.
//
// HandleStart is called on each selector first, then the rows are built and
// HandleComplete is called with them. When two selectors write the same field
// the last one wins. fields may be nil, in that case every selector resolves
// its name as a path. Any error aborts the pass and no rows are returned.
func Perform[T any](sels []Selector, items []T, fields prop.Fields) ([]drow.Row, error) {
	if len(sels) == 0 {
		return nil, fmt.Errorf("selector.Perform: %w", ErrNoSelectors)
	}
	all := conv.ToAnySlice(items)
	for _, s := range sels {
		if err := s.HandleStart(all); err != nil {
			return nil, fmt.Errorf("selector.Perform: start %s: %w", s.Alias(), err)
		}
	}

	rows := make([]drow.Row, 0, len(items))
	for i, item := range all {
		row := make(drow.Row, 0, len(sels))
		for _, s := range sels {
			if err := s.HandleRow(i, &row, item, fields); err != nil {
				return nil, fmt.Errorf("selector.Perform: row %d: %w", i, err)
			}
		}
		rows = append(rows, row)
	}

	for _, s := range sels {
		if err := s.HandleComplete(rows); err != nil {
			return nil, fmt.Errorf("selector.Perform: complete %s: %w", s.Alias(), err)
		}
	}
	return rows, nil
}
