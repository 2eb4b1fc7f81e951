package etlparquet_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/apd"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlio"
	"github.com/stdiopt/criteria/etl/x/etlparquet"
)

func TestEncodeDecode(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	nick := "bobby"
	rows := []drow.Row{
		{
			drow.F("rowId", 0),
			drow.F("name", "Bob"),
			drow.F("nick", &nick),
			drow.F("score", 9.5),
			drow.F("active", true),
			drow.F("price", apd.New(990, -2)),
			drow.F("at", ts),
		},
		{
			drow.F("rowId", 1),
			drow.F("name", "Ann"),
			drow.F("nick", nil),
			drow.F("score", "7"),
			drow.F("active", false),
			drow.F("price", nil),
			drow.F("at", ts.Add(time.Hour)),
		},
	}
	want := []drow.Row{
		{
			drow.F("rowId", int64(0)),
			drow.F("name", "Bob"),
			drow.F("nick", "bobby"),
			drow.F("score", 9.5),
			drow.F("active", true),
			drow.F("price", "9.90"),
			drow.F("at", ts),
		},
		{
			drow.F("rowId", int64(1)),
			drow.F("name", "Ann"),
			drow.F("nick", nil),
			drow.F("score", 7.0),
			drow.F("active", false),
			drow.F("price", nil),
			drow.F("at", ts.Add(time.Hour)),
		},
	}

	data, err := etlio.ReadAll(context.Background(), etlparquet.Encode(etl.Values(rows...)))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected parquet data")
	}

	got, err := etl.Collect[drow.Row](etlparquet.Decode(etl.Values(data)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip\nwant: %v\n got: %v", want, got)
	}
}

func TestEncode_unsupported(t *testing.T) {
	rows := []drow.Row{{drow.F("tags", []string{"a"})}}
	_, err := etlio.ReadAll(context.Background(), etlparquet.Encode(etl.Values(rows...)))
	if err == nil {
		t.Error("expected unsupported type error")
	}
}

func TestEncode_empty(t *testing.T) {
	data, err := etlio.ReadAll(context.Background(), etlparquet.Encode(etl.Values[drow.Row]()))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("want no data, got %d bytes", len(data))
	}
}
