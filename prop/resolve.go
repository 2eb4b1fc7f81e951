package prop

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/stdiopt/criteria/drow"
)

type segment struct {
	key string
	// bracket is true for [key] segments, those never project over slices.
	bracket bool
}

func (s segment) String() string {
	if s.bracket {
		return "[" + s.key + "]"
	}
	return s.key
}

// Resolve walks path on item and returns the value found.
//
// Segments are separated by '.' and may be followed by any number of [n]
// indexes, "this" resolves to the current value. Structs are navigated by
// property key or go field name, maps by key, rows by field name, slices and
// arrays by index. A property segment on a slice is applied to every element
// and yields a []any. Missing map keys and row fields resolve to nil, any
// other segment that can't be navigated fails with ErrPath.
func Resolve(item any, path string) (any, error) {
	segs, err := parse(path)
	if err != nil {
		return nil, err
	}
	v, err := walk(item, segs)
	if err != nil {
		return nil, fmt.Errorf("prop.Resolve %q: %w", path, err)
	}
	return v, nil
}

// ResolveSegments is like Resolve but each element of segs is a single
// property name or index, no path parsing is done.
func ResolveSegments(item any, segs ...string) (any, error) {
	ss := make([]segment, len(segs))
	for i, s := range segs {
		ss[i] = segment{key: s}
	}
	v, err := walk(item, ss)
	if err != nil {
		return nil, fmt.Errorf("prop.ResolveSegments %q: %w", strings.Join(segs, "."), err)
	}
	return v, nil
}

func parse(path string) ([]segment, error) {
	var segs []segment
	name := strings.Builder{}
	flush := func(i int) error {
		if name.Len() == 0 {
			return fmt.Errorf("prop.Resolve %q: empty segment at %d: %w", path, i, ErrPath)
		}
		segs = append(segs, segment{key: name.String()})
		name.Reset()
		return nil
	}
	// closed is true right after a ']' so "a[0].b" and "a[0][1]" are valid.
	closed := false
	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			if !closed {
				if err := flush(i); err != nil {
					return nil, err
				}
			}
			closed = false
		case '[':
			if name.Len() > 0 {
				if err := flush(i); err != nil {
					return nil, err
				}
			}
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("prop.Resolve %q: unclosed '[' at %d: %w", path, i, ErrPath)
			}
			key := strings.Trim(path[i+1:i+end], `"'`)
			segs = append(segs, segment{key: key, bracket: true})
			i += end
			closed = true
		default:
			if closed {
				return nil, fmt.Errorf("prop.Resolve %q: unexpected %q at %d: %w", path, c, i, ErrPath)
			}
			name.WriteByte(c)
		}
	}
	if !closed {
		if err := flush(len(path)); err != nil {
			return nil, err
		}
	}
	return segs, nil
}

func walk(item any, segs []segment) (any, error) {
	cur := item
	for i, s := range segs {
		v, err := step(cur, s)
		if err != nil {
			return nil, err
		}
		// A property on a slice maps the rest of the path over its elements.
		if p, ok := v.(projected); ok {
			return p.walk(segs[i+1:])
		}
		cur = v
	}
	return cur, nil
}

// projected is the result of a property segment applied to a slice.
type projected []any

func (p projected) walk(rest []segment) (any, error) {
	ret := make([]any, len(p))
	for i, v := range p {
		r, err := walk(v, rest)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if pp, ok := r.(projected); ok {
			r = []any(pp)
		}
		ret[i] = r
	}
	return ret, nil
}

func step(cur any, s segment) (any, error) {
	if s.key == This && !s.bracket {
		return cur, nil
	}
	if row, ok := cur.(drow.Row); ok {
		if s.bracket {
			if n, err := strconv.Atoi(s.key); err == nil {
				if n < 0 || n >= len(row) {
					return nil, fmt.Errorf("%v: index %d out of range [0:%d]: %w", s, n, len(row), ErrPath)
				}
				return row[n].Value, nil
			}
		}
		return row.Value(s.key), nil
	}

	val := reflect.ValueOf(cur)
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			break
		}
		val = val.Elem()
	}
	if !val.IsValid() || isNilKind(val) {
		return nil, fmt.Errorf("%v: nil value: %w", s, ErrPath)
	}

	switch val.Kind() {
	case reflect.Struct:
		si := structOf(val.Type())
		index, ok := si.index[s.key]
		if !ok {
			return nil, fmt.Errorf("%v: no field in %v: %w", s, val.Type(), ErrPath)
		}
		fv, err := val.FieldByIndexErr(index)
		if err != nil {
			return nil, fmt.Errorf("%v: %v: %w", s, err, ErrPath)
		}
		return fv.Interface(), nil
	case reflect.Map:
		k, err := mapKey(val.Type().Key(), s.key)
		if err != nil {
			return nil, fmt.Errorf("%v: %v: %w", s, err, ErrPath)
		}
		mv := val.MapIndex(k)
		if !mv.IsValid() {
			return nil, nil
		}
		return mv.Interface(), nil
	case reflect.Slice, reflect.Array:
		n, err := strconv.Atoi(s.key)
		if err != nil {
			if s.bracket {
				return nil, fmt.Errorf("%v: non integer index on %v: %w", s, val.Type(), ErrPath)
			}
			return project(val, s)
		}
		if n < 0 || n >= val.Len() {
			return nil, fmt.Errorf("%v: index %d out of range [0:%d]: %w", s, n, val.Len(), ErrPath)
		}
		return val.Index(n).Interface(), nil
	}
	return nil, fmt.Errorf("%v: can't navigate %v: %w", s, val.Type(), ErrPath)
}

func project(val reflect.Value, s segment) (projected, error) {
	ret := make(projected, val.Len())
	for i := 0; i < val.Len(); i++ {
		v, err := step(val.Index(i).Interface(), s)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		ret[i] = v
	}
	return ret, nil
}

func mapKey(typ reflect.Type, key string) (reflect.Value, error) {
	switch typ.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(typ), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(typ), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(typ), nil
	case reflect.Interface:
		if typ.NumMethod() == 0 {
			return reflect.ValueOf(key), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("unsupported map key type %v", typ)
}

func isNilKind(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return val.IsNil()
	}
	return false
}
