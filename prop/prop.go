// Package prop reads named properties off arbitrary values.
//
// Two ways are provided: an accessor table (Fields) built once per struct type
// for direct reads of simple field names, and Resolve which walks dotted and
// indexed paths like "address.city" or "items[2].name" by reflection.
package prop

import (
	"errors"
	"strings"
)

var (
	// ErrPath is returned when a path segment can't be navigated.
	ErrPath = errors.New("path resolution failed")
	// ErrType is returned when an accessor is used on an item of a
	// different type than the one it was built for.
	ErrType = errors.New("accessor type mismatch")
)

// This is the path that resolves to the item itself.
const This = "this"

// IsPath returns true if name must be resolved as a path instead of being
// looked up in an accessor table.
func IsPath(name string) bool {
	return name == This ||
		strings.Contains(name, ".") ||
		strings.Contains(name, "[")
}
