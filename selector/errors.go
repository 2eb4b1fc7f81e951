package selector

import (
	"errors"

	"github.com/stdiopt/criteria/prop"
)

var (
	// ErrLookup is returned when a simple field selector has no accessor in
	// the supplied accessor table.
	ErrLookup = errors.New("field accessor not found")
	// ErrPath is returned when a path can't be resolved on an item.
	ErrPath = prop.ErrPath
	// ErrNullItem is returned when the whole item is converted to string and
	// the item is nil.
	ErrNullItem = errors.New("nil item")
	// ErrTransform wraps errors returned by a Transform.
	ErrTransform = errors.New("transform failed")
	// ErrNoSelectors is returned by Perform when no selector is given.
	ErrNoSelectors = errors.New("no selectors")
)
