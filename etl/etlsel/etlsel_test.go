package etlsel_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlcsv"
	"github.com/stdiopt/criteria/etl/etlio"
	"github.com/stdiopt/criteria/etl/etlsel"
	"github.com/stdiopt/criteria/prop"
	"github.com/stdiopt/criteria/selector"
)

type item struct {
	Name string
	Qty  int
}

func items(n int) []item {
	ret := make([]item, n)
	for i := range ret {
		ret[i] = item{Name: string(rune('a' + i)), Qty: i * 10}
	}
	return ret
}

func TestProject(t *testing.T) {
	type test struct {
		it      func() etl.Iter
		sels    []selector.Selector
		opts    []etlsel.OptFunc
		want    []drow.Row
		wantErr error
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			got, err := etl.Collect[drow.Row](etlsel.Project(tt.it(), tt.sels, tt.opts...))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Project() error\nwant: %v\n got: %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Project()\nwant: %v\n got: %v", tt.want, got)
			}
		})
	}

	run("projects all items", test{
		it:   func() etl.Iter { return etl.Values(items(2)...) },
		sels: selector.Selects(selector.RowID(), selector.SelectAs("name", "n")),
		opts: []etlsel.OptFunc{etlsel.WithFieldsOf()},
		want: []drow.Row{
			{drow.F("rowId", 0), drow.F("n", "a")},
			{drow.F("rowId", 1), drow.F("n", "b")},
		},
	})
	run("explicit fields", test{
		it:   func() etl.Iter { return etl.Values(items(1)...) },
		sels: selector.Selects(selector.ToStr("qty")),
		opts: []etlsel.OptFunc{etlsel.WithFields(prop.FieldsOf(item{}))},
		want: []drow.Row{{drow.F("qty", "0")}},
	})
	run("csv rows as items", test{
		it: func() etl.Iter {
			return etlcsv.Decode(strings.NewReader("name,qty\nx,1\ny,2\n"))
		},
		sels: selector.Selects(
			selector.SelectFunc("qty", "qty", selector.TransformInt),
			selector.Select("name"),
		),
		want: []drow.Row{
			{drow.F("qty", 1), drow.F("name", "x")},
			{drow.F("qty", 2), drow.F("name", "y")},
		},
	})
	run("nil items", test{
		it:   func() etl.Iter { return etl.Values[any](item{Name: "a"}, nil) },
		sels: selector.Selects(selector.RowID()),
		want: []drow.Row{
			{drow.F("rowId", 0)},
			{drow.F("rowId", 1)},
		},
	})
	run("nil item to string", test{
		it:      func() etl.Iter { return etl.Values[any](item{Name: "a"}, nil) },
		sels:    selector.Selects(selector.ToStrItem()),
		wantErr: selector.ErrNullItem,
	})
	run("selection error", test{
		it:      func() etl.Iter { return etl.Values(items(1)...) },
		sels:    selector.Selects(selector.Select("missing")),
		opts:    []etlsel.OptFunc{etlsel.WithFieldsOf()},
		wantErr: selector.ErrLookup,
	})
}

func TestProjectBatches(t *testing.T) {
	type test struct {
		n    int
		opts []etlsel.OptFunc
		want []int
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			src := etl.Values(items(tt.n)...)
			sels := selector.Selects(selector.RowID(), selector.Select("qty"))
			rows, err := etl.Collect[drow.Row](etlsel.ProjectBatches(src, sels, tt.opts...))
			if err != nil {
				t.Fatal(err)
			}
			got := []int{}
			for i, r := range rows {
				if want := i * 10; r.Value("qty") != want {
					t.Fatalf("row %d out of order: %v", i, r)
				}
				got = append(got, r.Value("rowId").(int))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("row ids\nwant: %v\n got: %v", tt.want, got)
			}
		})
	}

	run("single batch", test{n: 3, want: []int{0, 1, 2}})
	run("row ids restart per batch", test{
		n:    5,
		opts: []etlsel.OptFunc{etlsel.WithBatchSize(2)},
		want: []int{0, 1, 0, 1, 0},
	})
	run("concurrent batches keep order", test{
		n:    7,
		opts: []etlsel.OptFunc{etlsel.WithBatchSize(2), etlsel.WithWorkers(3), etlsel.WithFieldsOf()},
		want: []int{0, 1, 0, 1, 0, 1, 0},
	})
	run("empty source", test{n: 0, want: []int{}})
}

func TestProject_toCSV(t *testing.T) {
	it := etlsel.Project(
		etl.Values(items(2)...),
		selector.Selects(selector.Select("name"), selector.SelectAs("qty", "quantity")),
	)
	got, err := etlio.ReadAll(context.Background(), etlcsv.Encode(it))
	if err != nil {
		t.Fatal(err)
	}
	if want := "name,quantity\na,0\nb,10\n"; string(got) != want {
		t.Errorf("csv\nwant: %q\n got: %q", want, got)
	}
}
