// Package selector projects items into ordered rows.
//
// A selection pass runs a list of selectors against every item, each selector
// writes one field into the item's row:
//
//	rows, err := selector.Perform(
//		selector.Selects(
//			selector.RowID(),
//			selector.Select("name"),
//			selector.SelectAs("address.city", "city"),
//		),
//		people,
//		prop.FieldsOf(Person{}),
//	)
//
// Simple names are read through the accessor table when one is given, names
// containing '.' or '[' or equal to "this" are resolved as paths on the item.
package selector

import (
	"fmt"
	"strings"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/prop"
	"github.com/stdiopt/criteria/util/conv"
)

// Selector is a rule that writes one field per item into a row.
//
// HandleStart is called once with all the items before any row is built,
// HandleRow once per item in order and HandleComplete once with all the built
// rows.
type Selector interface {
	Name() string
	Alias() string
	HandleStart(items []any) error
	HandleRow(index int, row *drow.Row, item any, fields prop.Fields) error
	HandleComplete(rows []drow.Row) error
}

// Kind identifies the behaviour of a Rule.
type Kind int

// Rule kinds.
const (
	KindSelect Kind = iota
	KindSelectAs
	KindTransform
	KindToStr
	KindToStrItem
	KindRowID
	KindPathSelect
	KindPathToStr
)

var kindNames = [...]string{
	KindSelect:     "select",
	KindSelectAs:   "selectAs",
	KindTransform:  "transform",
	KindToStr:      "toStr",
	KindToStrItem:  "toStrItem",
	KindRowID:      "rowId",
	KindPathSelect: "pathSelect",
	KindPathToStr:  "pathToStr",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

const (
	// RowIDName is the field written by RowID.
	RowIDName = "rowId"
	// ToStrItemName is the field written by ToStrItem.
	ToStrItemName = "toString()"

	toStrSuffix = ".toString()"
)

// Rule is the Selector implementation returned by the constructors in this
// package. It holds no per pass state and is safe to share between
// concurrent passes.
type Rule struct {
	kind      Kind
	name      string
	alias     string
	path      bool
	segs      []string
	transform Transform
}

func newRule(kind Kind, name, alias string) *Rule {
	if alias == "" {
		alias = name
	}
	return &Rule{
		kind:  kind,
		name:  name,
		alias: alias,
		path:  prop.IsPath(name),
	}
}

// Select selects the property or path name under its own name.
func Select(name string) *Rule {
	return newRule(KindSelect, name, name)
}

// SelectAs selects the property or path name under alias, an empty alias
// means name.
func SelectAs(name, alias string) *Rule {
	return newRule(KindSelectAs, name, alias)
}

// SelectFunc selects name, applies fn to the value and writes the result
// under alias.
func SelectFunc(name, alias string, fn Transform) *Rule {
	r := newRule(KindTransform, name, alias)
	r.transform = fn
	return r
}

// ToStr writes the string form of the field name, read from the accessor
// table by its exact name, nil becomes "".
func ToStr(name string) *Rule {
	return newRule(KindToStr, name, name)
}

// ToStrItem writes the string form of the whole item under "toString()".
func ToStrItem() *Rule {
	return newRule(KindToStrItem, ToStrItemName, "")
}

// RowID writes the zero based index of the item under "rowId".
func RowID() *Rule {
	return newRule(KindRowID, RowIDName, "")
}

// SelectPath selects the property path made by segs, each segment is a
// single property name or index.
//
// Deprecated: use Select with a dotted path.
func SelectPath(segs ...string) *Rule {
	r := newRule(KindPathSelect, strings.Join(segs, "."), "")
	r.segs = segs
	return r
}

// SelectPropPath is the same as SelectPath.
//
// Deprecated: use Select with a dotted path.
func SelectPropPath(segs ...string) *Rule {
	return SelectPath(segs...)
}

// ToStrPath writes the string form of the property path made by segs under
// the joined path followed by ".toString()".
//
// Deprecated: use SelectFunc with TransformString.
func ToStrPath(segs ...string) *Rule {
	r := newRule(KindPathToStr, strings.Join(segs, ".")+toStrSuffix, "")
	r.segs = segs
	return r
}

// Kind returns the rule kind.
func (r *Rule) Kind() Kind { return r.kind }

// Name returns the property name or path.
func (r *Rule) Name() string { return r.name }

// Alias returns the field name written to the row.
func (r *Rule) Alias() string { return r.alias }

// IsPath returns true if the name is resolved as a path.
func (r *Rule) IsPath() bool { return r.path }

func (r *Rule) String() string {
	if r.alias != r.name {
		return fmt.Sprintf("%v(%s as %s)", r.kind, r.name, r.alias)
	}
	return fmt.Sprintf("%v(%s)", r.kind, r.name)
}

// HandleStart implements Selector.
func (r *Rule) HandleStart([]any) error { return nil }

// HandleComplete implements Selector.
func (r *Rule) HandleComplete([]drow.Row) error { return nil }

// HandleRow implements Selector.
func (r *Rule) HandleRow(index int, row *drow.Row, item any, fields prop.Fields) error {
	switch r.kind {
	case KindSelect, KindSelectAs:
		v, err := r.value(item, fields)
		if err != nil {
			return err
		}
		row.Put(r.alias, v)
	case KindTransform:
		v, err := r.value(item, fields)
		if err != nil {
			return err
		}
		if r.transform != nil {
			if v, err = r.transform(v); err != nil {
				return fmt.Errorf("selector %v: %w: %w", r, ErrTransform, err)
			}
		}
		row.Put(r.alias, v)
	case KindToStr:
		a, ok := fields.Get(r.name)
		if !ok {
			return fmt.Errorf("selector %v: %q: %w", r, r.name, ErrLookup)
		}
		v, err := a.Value(item)
		if err != nil {
			return fmt.Errorf("selector %v: %w", r, err)
		}
		row.Put(r.name, conv.ToString(v))
	case KindToStrItem:
		if conv.IsNil(item) {
			return fmt.Errorf("selector %v: row %d: %w", r, index, ErrNullItem)
		}
		row.Put(r.name, conv.ToString(item))
	case KindRowID:
		row.Put(r.name, index)
	case KindPathSelect:
		v, err := prop.ResolveSegments(item, r.segs...)
		if err != nil {
			return fmt.Errorf("selector %v: %w", r, err)
		}
		row.Put(r.name, v)
	case KindPathToStr:
		v, err := prop.ResolveSegments(item, r.segs...)
		if err != nil {
			return fmt.Errorf("selector %v: %w", r, err)
		}
		row.Put(r.name, conv.ToString(v))
	default:
		return fmt.Errorf("selector: unknown kind %v", r.kind)
	}
	return nil
}

// value reads the selected value, through the accessor table for simple
// names or by path resolution otherwise.
func (r *Rule) value(item any, fields prop.Fields) (any, error) {
	if r.path || fields == nil {
		v, err := prop.Resolve(item, r.name)
		if err != nil {
			return nil, fmt.Errorf("selector %v: %w", r, err)
		}
		return v, nil
	}
	a, ok := fields.Get(r.name)
	if !ok {
		return nil, fmt.Errorf("selector %v: %q: %w", r, r.name, ErrLookup)
	}
	v, err := a.Value(item)
	if err != nil {
		return nil, fmt.Errorf("selector %v: %w", r, err)
	}
	return v, nil
}
