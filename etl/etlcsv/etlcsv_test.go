package etlcsv_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlcsv"
	"github.com/stdiopt/criteria/etl/etlio"
)

func TestDecode(t *testing.T) {
	type test struct {
		input string
		opts  []etlcsv.DecodeOptFunc
		want  []drow.Row
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			got, err := etl.Collect[drow.Row](etlcsv.Decode(strings.NewReader(tt.input), tt.opts...))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode()\nwant: %v\n got: %v", tt.want, got)
			}
		})
	}

	run("with header", test{
		input: "name,age\nBob, 42\nAnn,31\n",
		want: []drow.Row{
			{drow.F("name", "Bob"), drow.F("age", "42")},
			{drow.F("name", "Ann"), drow.F("age", "31")},
		},
	})
	run("without header", test{
		input: "Bob;42\n",
		opts:  []etlcsv.DecodeOptFunc{etlcsv.WithDecodeHeader(false), etlcsv.WithDecodeComma(';')},
		want:  []drow.Row{{drow.F("col1", "Bob"), drow.F("col2", "42")}},
	})
	run("only header", test{
		input: "name,age\n",
		want:  []drow.Row{},
	})
}

func TestEncode(t *testing.T) {
	type test struct {
		rows []drow.Row
		opts []etlcsv.EncodeOptFunc
		want string
	}

	run := func(name string, tt test) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			got, err := etlio.ReadAll(context.Background(), etlcsv.Encode(etl.Values(tt.rows...), tt.opts...))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode()\nwant: %q\n got: %q", tt.want, got)
			}
		})
	}

	rows := []drow.Row{
		{drow.F("rowId", 0), drow.F("name", "Bob"), drow.F("nick", nil)},
		{drow.F("name", "Ann"), drow.F("rowId", 1)},
	}
	run("header and column order from first row", test{
		rows: rows,
		want: "rowId,name,nick\n0,Bob,\n1,Ann,\n",
	})
	run("no header", test{
		rows: rows[:1],
		opts: []etlcsv.EncodeOptFunc{etlcsv.WithEncodeNoHeader(), etlcsv.WithEncodeComma(';')},
		want: "0;Bob;\n",
	})
}
