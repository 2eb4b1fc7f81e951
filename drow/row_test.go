package drow

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/apd"
)

func TestRow_Put(t *testing.T) {
	type test struct {
		row  Row
		puts []Field
		want Row
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			r := tt.row
			for _, f := range tt.puts {
				r.Put(f.Name, f.Value)
			}
			if !reflect.DeepEqual(r, tt.want) {
				t.Errorf("Row.Put()\nwant: %v\n got: %v", tt.want, r)
			}
		})
	}

	run("appends to empty row", test{
		puts: []Field{F("a", 1), F("b", 2)},
		want: Row{F("a", 1), F("b", 2)},
	})
	run("replaces existing value in place", test{
		row:  Row{F("a", 1), F("b", 2)},
		puts: []Field{F("a", 3)},
		want: Row{F("a", 3), F("b", 2)},
	})
	run("last writer wins", test{
		puts: []Field{F("x", "first"), F("y", nil), F("x", "second")},
		want: Row{F("x", "second"), F("y", nil)},
	})
}

func TestRow_Accessors(t *testing.T) {
	r := Row{F("name", "Bob"), F("age", 42), F("tags", []string{"a"})}

	if v, ok := r.Get("name"); !ok || v != "Bob" {
		t.Errorf("Get(name)\nwant: Bob true\n got: %v %v", v, ok)
	}
	if v, ok := r.Get("missing"); ok || v != nil {
		t.Errorf("Get(missing)\nwant: nil false\n got: %v %v", v, ok)
	}
	if got := r.Value("age"); got != 42 {
		t.Errorf("Value(age)\nwant: 42\n got: %v", got)
	}
	if got := r.At(1).Name; got != "age" {
		t.Errorf("At(1)\nwant: age\n got: %v", got)
	}
	if got := r.At(5); !reflect.DeepEqual(got, Field{}) {
		t.Errorf("At(5)\nwant: zero field\n got: %v", got)
	}
	if want, got := []string{"name", "age", "tags"}, r.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns()\nwant: %v\n got: %v", want, got)
	}
	if want, got := (Row{F("age", 42), F("name", "Bob")}), r.Select("age", "nope", "name"); !reflect.DeepEqual(got, want) {
		t.Errorf("Select()\nwant: %v\n got: %v", want, got)
	}
	if got := r.String(); got != "{name: Bob, age: 42, tags: [a]}" {
		t.Errorf("String()\nwant: {name: Bob, age: 42, tags: [a]}\n got: %v", got)
	}
}

func TestRow_Eq(t *testing.T) {
	a := Row{F("a", 1), F("b", "x")}
	if !a.Eq(Row{F("a", 1), F("b", "x")}) {
		t.Error("expected equal rows")
	}
	if a.Eq(Row{F("b", "x"), F("a", 1)}) {
		t.Error("expected order to matter")
	}
	if (Row{F("s", []int{1})}).Eq(Row{F("s", []int{1})}) {
		t.Error("expected non comparable values to be not equal")
	}
}

func TestRow_ToMap(t *testing.T) {
	r := Row{F("a", 1), F("sub", Row{F("b", 2)})}
	want := map[string]any{"a": 1, "sub": map[string]any{"b": 2}}
	if got := r.ToMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToMap()\nwant: %v\n got: %v", want, got)
	}
}

func TestRow_MarshalJSON(t *testing.T) {
	r := Row{
		F("z", "last"),
		F("a", 1),
		F("price", apd.New(1999, -2)),
		F("nothing", nil),
		F("sub", Row{F("k", true)}),
	}
	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":"last","a":1,"price":19.99,"nothing":null,"sub":{"k":true}}`
	if string(data) != want {
		t.Errorf("MarshalJSON()\nwant: %s\n got: %s", want, data)
	}
}

func TestField_Conversions(t *testing.T) {
	f := F("n", "42")
	if got := f.Int(); got != 42 {
		t.Errorf("Int()\nwant: 42\n got: %v", got)
	}
	if got := f.Float64(); got != 42 {
		t.Errorf("Float64()\nwant: 42\n got: %v", got)
	}
	if got := F("n", nil).String(); got != "" {
		t.Errorf("String()\nwant: \"\"\n got: %q", got)
	}
	if got := F("n", 3.5).Decimal(); got == nil || got.Text('f') != "3.5" {
		t.Errorf("Decimal()\nwant: 3.5\n got: %v", got)
	}
	if got := F("n", "x").Decimal(); got != nil {
		t.Errorf("Decimal()\nwant: nil\n got: %v", got)
	}
}
