package prop

import (
	"fmt"
	"log"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Accessor reads a single field off an item.
type Accessor interface {
	Value(item any) (any, error)
}

// AccessorFunc is a func Accessor.
type AccessorFunc func(item any) (any, error)

// Value implements Accessor.
func (fn AccessorFunc) Value(item any) (any, error) { return fn(item) }

// Fields is an accessor table by field name.
type Fields map[string]Accessor

// Get returns the accessor for name.
func (f Fields) Get(name string) (Accessor, bool) {
	a, ok := f[name]
	return a, ok
}

// Names returns the field names in the table, unordered.
func (f Fields) Names() []string {
	ret := make([]string, 0, len(f))
	for k := range f {
		ret = append(ret, k)
	}
	return ret
}

// FieldsOf returns the accessor table for the struct type of v (or the struct
// v points to). The table is computed once per type. Non struct types return
// nil.
func FieldsOf(v any) Fields {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}
	if t = indirect(t); t.Kind() != reflect.Struct {
		return nil
	}
	return structOf(t).fields
}

// Keys returns an accessor table that reads the named keys from map and row
// items, a missing key reads as nil.
func Keys(names ...string) Fields {
	f := make(Fields, len(names))
	for _, n := range names {
		seg := segment{key: n}
		f[n] = AccessorFunc(func(item any) (any, error) {
			return step(item, seg)
		})
	}
	return f
}

type structInfo struct {
	typ reflect.Type
	// index by key, both the property key and the go field name.
	index  map[string][]int
	fields Fields
}

type structEntry struct {
	once sync.Once
	si   *structInfo
}

var structCache sync.Map // map[reflect.Type]*structEntry

// structOf builds the struct info of t once, concurrent callers wait for the
// first build.
func structOf(t reflect.Type) *structInfo {
	e, ok := structCache.Load(t)
	if !ok {
		e, _ = structCache.LoadOrStore(t, &structEntry{})
	}
	ent := e.(*structEntry)
	ent.once.Do(func() {
		ent.si = buildStruct(t)
	})
	return ent.si
}

func buildStruct(t reflect.Type) *structInfo {
	si := &structInfo{
		typ:    t,
		index:  map[string][]int{},
		fields: Fields{},
	}
	depth := map[string]int{}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous && indirect(sf.Type).Kind() == reflect.Struct {
			continue
		}
		key, ok := fieldKey(sf)
		if !ok {
			continue
		}
		keys := []string{key}
		if key != sf.Name {
			keys = append(keys, sf.Name)
		}
		for _, k := range keys {
			d, seen := depth[k]
			switch {
			case !seen, len(sf.Index) < d:
			case len(sf.Index) == d && k == key:
				log.Printf("prop: %v: field %q shadows key %q", t, sf.Name, k)
				continue
			default:
				continue
			}
			depth[k] = len(sf.Index)
			si.index[k] = sf.Index
			si.fields[k] = si.accessor(sf.Index)
		}
	}
	return si
}

func (si *structInfo) accessor(index []int) Accessor {
	return AccessorFunc(func(item any) (any, error) {
		val := reflect.ValueOf(item)
		if !val.IsValid() {
			return nil, fmt.Errorf("prop: nil item: %w", ErrPath)
		}
		for val.Kind() == reflect.Pointer {
			if val.IsNil() {
				return nil, fmt.Errorf("prop: nil %v: %w", val.Type(), ErrPath)
			}
			val = val.Elem()
		}
		if val.Type() != si.typ {
			return nil, fmt.Errorf("prop: accessor for %v used on %T: %w", si.typ, item, ErrType)
		}
		fv, err := val.FieldByIndexErr(index)
		if err != nil {
			return nil, fmt.Errorf("prop: %v: %v: %w", si.typ, err, ErrPath)
		}
		return fv.Interface(), nil
	})
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// fieldKey returns the property key for a struct field, the `prop` tag takes
// precedence over the decapitalized field name.
func fieldKey(sf reflect.StructField) (string, bool) {
	if tag, ok := sf.Tag.Lookup("prop"); ok {
		if tag == "-" {
			return "", false
		}
		if tag != "" {
			return tag, true
		}
	}
	return decapitalize(sf.Name), true
}

// decapitalize lowers the first rune unless the name starts with two upper
// case runes, "Name" becomes "name" and "ID" stays "ID".
func decapitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !unicode.IsUpper(r) {
		return s
	}
	if r2, _ := utf8.DecodeRuneInString(s[n:]); unicode.IsUpper(r2) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
