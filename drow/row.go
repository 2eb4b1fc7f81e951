// Package drow provides the ordered row produced by a selection pass.
package drow

import (
	"bytes"
	"fmt"
)

// Row is a slice of fields kept in insertion order.
type Row []Field

// FromMap creates a row from a map, the fields won't be in any particular
// order.
func FromMap(m map[string]any) Row {
	r := make(Row, 0, len(m))
	for k, v := range m {
		r = append(r, F(k, v))
	}
	return r
}

// Put sets the field name to v, an existing field keeps its position and only
// has its value replaced.
func (r *Row) Put(name string, v any) {
	if i := r.Index(name); i >= 0 {
		(*r)[i].Value = v
		return
	}
	*r = append(*r, F(name, v))
}

// Get returns the value of the field name and true if it exists.
func (r Row) Get(name string) (any, bool) {
	i := r.Index(name)
	if i < 0 {
		return nil, false
	}
	return r[i].Value, true
}

// Value returns the value of field name or nil.
func (r Row) Value(name string) any {
	v, _ := r.Get(name)
	return v
}

// At returns the field at position i, a zero Field if out of range.
func (r Row) At(i int) Field {
	if i < 0 || i >= len(r) {
		return Field{}
	}
	return r[i]
}

// Has returns true if the row has a field named name.
func (r Row) Has(name string) bool {
	return r.Index(name) >= 0
}

// Index returns the position of a field by name, -1 if missing.
func (r Row) Index(name string) int {
	for i, f := range r {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Columns returns the names of the fields.
func (r Row) Columns() []string {
	ret := make([]string, len(r))
	for i, f := range r {
		ret[i] = f.Name
	}
	return ret
}

// Values return a []any of the values of the row fields.
func (r Row) Values() []any {
	ret := make([]any, len(r))
	for i, f := range r {
		ret[i] = f.Value
	}
	return ret
}

// ToMap converts a row to map[string]any, nested rows are converted too.
func (r Row) ToMap() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		if sub, ok := f.Value.(Row); ok {
			m[f.Name] = sub.ToMap()
			continue
		}
		m[f.Name] = f.Value
	}
	return m
}

// Select returns a new row with the named fields in the given order, missing
// names are skipped.
func (r Row) Select(names ...string) Row {
	ret := make(Row, 0, len(names))
	for _, n := range names {
		if i := r.Index(n); i >= 0 {
			ret = append(ret, r[i])
		}
	}
	return ret
}

// Eq returns true if v is a row with the same fields in the same order.
func (r Row) Eq(v any) bool {
	r2, ok := v.(Row)
	if !ok || len(r) != len(r2) {
		return false
	}
	for i := range r {
		if !r[i].eq(r2[i]) {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	buf := bytes.NewBuffer(nil)
	fmt.Fprint(buf, "{")
	for i, f := range r {
		if i > 0 {
			fmt.Fprint(buf, ", ")
		}
		fmt.Fprintf(buf, "%s: %v", f.Name, f.Value)
	}
	fmt.Fprint(buf, "}")
	return buf.String()
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return append(Row{}, r...)
}
