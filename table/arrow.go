// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToArrow converts a frame to an Arrow table for columnar-binary I/O.
// The caller owns the returned table and must Release it.
func ToArrow(f *Frame) (arrow.Table, error) {
	if f == nil || f.NumCols() == 0 {
		return nil, ErrEmptyData
	}

	mem := memory.NewGoAllocator()
	fields := make([]arrow.Field, 0, f.NumCols())
	arrs := make([]arrow.Array, 0, f.NumCols())

	for _, c := range f.cols {
		field, arr, err := buildArrowColumn(mem, c)
		if err != nil {
			for _, a := range arrs {
				a.Release()
			}
			return nil, err
		}
		fields = append(fields, field)
		arrs = append(arrs, arr)
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrs, int64(f.NumRows()))
	defer rec.Release()
	for _, a := range arrs {
		a.Release()
	}

	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func buildArrowColumn(mem memory.Allocator, c Column) (arrow.Field, arrow.Array, error) {
	switch c.Type {
	case TypeString:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range c.Values {
			if v.IsNull {
				b.AppendNull()
			} else {
				b.Append(v.Raw.(string))
			}
		}
		return arrow.Field{Name: c.Name, Type: arrow.BinaryTypes.String, Nullable: true}, b.NewArray(), nil

	case TypeInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for _, v := range c.Values {
			if v.IsNull {
				b.AppendNull()
			} else {
				b.Append(v.Raw.(int64))
			}
		}
		return arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Int64, Nullable: true}, b.NewArray(), nil

	case TypeFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, v := range c.Values {
			if v.IsNull {
				b.AppendNull()
			} else {
				b.Append(v.Raw.(float64))
			}
		}
		return arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}, b.NewArray(), nil

	case TypeBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, v := range c.Values {
			if v.IsNull {
				b.AppendNull()
			} else {
				b.Append(v.Raw.(bool))
			}
		}
		return arrow.Field{Name: c.Name, Type: arrow.FixedWidthTypes.Boolean, Nullable: true}, b.NewArray(), nil

	case TypeTimestamp:
		dt := &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
		b := array.NewTimestampBuilder(mem, dt)
		defer b.Release()
		for _, v := range c.Values {
			if v.IsNull {
				b.AppendNull()
			} else {
				b.Append(arrow.Timestamp(v.Raw.(time.Time).UnixMicro()))
			}
		}
		return arrow.Field{Name: c.Name, Type: dt, Nullable: true}, b.NewArray(), nil

	default:
		return arrow.Field{}, nil, fmt.Errorf("%w: column %s has unsupported type %s",
			ErrTypeMismatch, c.Name, c.Type)
	}
}

// FromArrow converts an Arrow table into a frame. Unsupported Arrow types
// are carried over as their string representation.
func FromArrow(t arrow.Table) (*Frame, error) {
	if t == nil || t.NumCols() == 0 {
		return nil, ErrEmptyData
	}

	schema := t.Schema()
	cols := make([]Column, t.NumCols())
	for i := 0; i < int(t.NumCols()); i++ {
		cols[i] = Column{
			Name:   schema.Field(i).Name,
			Type:   dataTypeOf(schema.Field(i).Type),
			Values: make([]Value, 0, int(t.NumRows())),
		}
	}

	tr := array.NewTableReader(t, t.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for colIdx, arr := range rec.Columns() {
			for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
				cols[colIdx].Values = append(cols[colIdx].Values,
					cellValue(arr, rowIdx, cols[colIdx].Type))
			}
		}
	}
	if tr.Err() != nil {
		return nil, fmt.Errorf("error reading table: %w", tr.Err())
	}

	return NewFrame(cols...)
}

// dataTypeOf maps an Arrow type onto the frame type system.
func dataTypeOf(dt arrow.DataType) DataType {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return TypeFloat
	case arrow.BOOL:
		return TypeBool
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return TypeTimestamp
	default:
		return TypeString
	}
}

// cellValue extracts an Arrow column value at a position as a frame Value.
func cellValue(col arrow.Array, pos int, target DataType) Value {
	if col.IsNull(pos) {
		return NewNullValue(target)
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return NewValue(col.(*array.String).Value(pos), TypeString)

	case arrow.LARGE_STRING:
		return NewValue(col.(*array.LargeString).Value(pos), TypeString)

	case arrow.BINARY:
		return NewValue(string(col.(*array.Binary).Value(pos)), TypeString)

	case arrow.BOOL:
		return NewValue(col.(*array.Boolean).Value(pos), TypeBool)

	case arrow.INT8:
		return NewValue(int64(col.(*array.Int8).Value(pos)), TypeInt)

	case arrow.INT16:
		return NewValue(int64(col.(*array.Int16).Value(pos)), TypeInt)

	case arrow.INT32:
		return NewValue(int64(col.(*array.Int32).Value(pos)), TypeInt)

	case arrow.INT64:
		return NewValue(col.(*array.Int64).Value(pos), TypeInt)

	case arrow.UINT8:
		return NewValue(int64(col.(*array.Uint8).Value(pos)), TypeInt)

	case arrow.UINT16:
		return NewValue(int64(col.(*array.Uint16).Value(pos)), TypeInt)

	case arrow.UINT32:
		return NewValue(int64(col.(*array.Uint32).Value(pos)), TypeInt)

	case arrow.UINT64:
		return NewValue(int64(col.(*array.Uint64).Value(pos)), TypeInt)

	case arrow.FLOAT32:
		return NewValue(float64(col.(*array.Float32).Value(pos)), TypeFloat)

	case arrow.FLOAT64:
		return NewValue(col.(*array.Float64).Value(pos), TypeFloat)

	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return NewValue(col.(*array.Timestamp).Value(pos).ToTime(unit), TypeTimestamp)

	case arrow.DATE32:
		return NewValue(col.(*array.Date32).Value(pos).ToTime(), TypeTimestamp)

	case arrow.DATE64:
		return NewValue(col.(*array.Date64).Value(pos).ToTime(), TypeTimestamp)

	default:
		return NewValue(fmt.Sprintf("%v", col.GetOneForMarshal(pos)), TypeString)
	}
}
