package etlparquet

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/fraugster/parquet-go/floor/interfaces"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"

	"github.com/stdiopt/criteria/drow"
	"github.com/stdiopt/criteria/util/conv"
)

// schemaFrom builds an all optional schema from the value types of r, nil
// values and strings like values become utf8 columns.
func schemaFrom(name string, r Row) (*parquetschema.SchemaDefinition, error) {
	root := &parquetschema.SchemaDefinition{
		RootColumn: &parquetschema.ColumnDefinition{
			SchemaElement: &parquet.SchemaElement{Name: name},
		},
	}
	for _, f := range r {
		el, err := schemaElement(f.Name, conv.Deref(f.Value))
		if err != nil {
			return nil, err
		}
		root.RootColumn.Children = append(root.RootColumn.Children, &parquetschema.ColumnDefinition{
			SchemaElement: el,
		})
	}
	return root, nil
}

func schemaElement(name string, v any) (*parquet.SchemaElement, error) {
	rep := parquet.FieldRepetitionType_OPTIONAL
	el := &parquet.SchemaElement{
		Name:           name,
		RepetitionType: &rep,
	}
	var ptyp parquet.Type
	switch v.(type) {
	case bool:
		ptyp = parquet.Type_BOOLEAN
	case int8, int16, int32, uint8, uint16:
		ptyp = parquet.Type_INT32
	case int, int64, uint, uint32, uint64:
		ptyp = parquet.Type_INT64
	case float32:
		ptyp = parquet.Type_FLOAT
	case float64:
		ptyp = parquet.Type_DOUBLE
	case time.Time:
		ptyp = parquet.Type_INT64
		el.LogicalType = &parquet.LogicalType{
			TIMESTAMP: &parquet.TimestampType{
				IsAdjustedToUTC: true,
				Unit: &parquet.TimeUnit{
					NANOS: &parquet.NanoSeconds{},
				},
			},
		}
	// decimals are kept as text to avoid fixing precision from one row.
	case nil, string, []byte, apd.Decimal, fmt.Stringer:
		ptyp = parquet.Type_BYTE_ARRAY
		ct := parquet.ConvertedType_UTF8
		el.ConvertedType = &ct
		el.LogicalType = &parquet.LogicalType{
			STRING: &parquet.StringType{},
		}
	default:
		return nil, fmt.Errorf("column %q: unsupported type %T", name, v)
	}
	el.Type = &ptyp
	return el, nil
}

type rowMarshaler struct {
	schema *parquetschema.SchemaDefinition
	row    Row
}

func (m *rowMarshaler) MarshalParquet(obj interfaces.MarshalObject) error {
	for _, col := range m.schema.RootColumn.Children {
		el := col.SchemaElement
		v := conv.Deref(m.row.Value(el.Name))
		if v == nil {
			continue
		}
		if err := setValue(obj.AddField(el.Name), el, v); err != nil {
			return fmt.Errorf("column %q: %w", el.Name, err)
		}
	}
	return nil
}

// setter is the part of the marshal element setValue needs.
type setter interface {
	SetBool(bool)
	SetInt32(int32)
	SetInt64(int64)
	SetFloat32(float32)
	SetFloat64(float64)
	SetByteArray([]byte)
}

func setValue(e setter, el *parquet.SchemaElement, v any) error {
	switch el.GetType() {
	case parquet.Type_BOOLEAN:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%T is not a bool", v)
		}
		e.SetBool(b)
	case parquet.Type_INT32:
		n, ok := conv.ConvOK[int32](v)
		if !ok {
			return fmt.Errorf("%T is not an int32", v)
		}
		e.SetInt32(n)
	case parquet.Type_INT64:
		if t, ok := v.(time.Time); ok {
			e.SetInt64(t.UnixNano())
			return nil
		}
		n, ok := conv.ConvOK[int64](v)
		if !ok {
			return fmt.Errorf("%T is not an int64", v)
		}
		e.SetInt64(n)
	case parquet.Type_FLOAT:
		n, ok := conv.ConvOK[float32](v)
		if !ok {
			return fmt.Errorf("%T is not a float32", v)
		}
		e.SetFloat32(n)
	case parquet.Type_DOUBLE:
		n, ok := conv.ConvOK[float64](v)
		if !ok {
			return fmt.Errorf("%T is not a float64", v)
		}
		e.SetFloat64(n)
	case parquet.Type_BYTE_ARRAY:
		if d, ok := v.(apd.Decimal); ok {
			e.SetByteArray([]byte(d.Text('f')))
			return nil
		}
		e.SetByteArray([]byte(conv.ToString(v)))
	default:
		return fmt.Errorf("unsupported column type %v", el.GetType())
	}
	return nil
}

type rowUnmarshaler struct {
	schema *parquetschema.SchemaDefinition
	row    Row
}

func (u *rowUnmarshaler) UnmarshalParquet(obj interfaces.UnmarshalObject) error {
	data := obj.GetData()
	row := make(Row, 0, len(u.schema.RootColumn.Children))
	for _, col := range u.schema.RootColumn.Children {
		el := col.SchemaElement
		v := data[el.Name]
		switch vv := v.(type) {
		case []byte:
			if isString(el) {
				v = string(vv)
			}
		case int64:
			if lt := el.LogicalType; lt != nil && lt.TIMESTAMP != nil {
				v = time.Unix(0, vv).UTC()
			}
		}
		row = append(row, drow.F(el.Name, v))
	}
	u.row = row
	return nil
}

func isString(el *parquet.SchemaElement) bool {
	if ct := el.ConvertedType; ct != nil && *ct == parquet.ConvertedType_UTF8 {
		return true
	}
	return el.LogicalType != nil && el.LogicalType.STRING != nil
}
