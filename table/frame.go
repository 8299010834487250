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
)

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Type   DataType
	Values []Value
}

// NewColumn builds a column from raw values. A nil raw becomes a null cell.
// Raw values must match the column type: string, int64, float64, bool or
// time.Time.
func NewColumn(name string, dataType DataType, raws ...interface{}) Column {
	values := make([]Value, len(raws))
	for i, raw := range raws {
		values[i] = NewValue(normalizeRaw(raw, dataType), dataType)
	}
	return Column{Name: name, Type: dataType, Values: values}
}

// normalizeRaw widens small integer and float kinds so that Value.Raw always
// holds int64/float64 for numeric columns.
func normalizeRaw(raw interface{}, dataType DataType) interface{} {
	if raw == nil {
		return nil
	}
	switch dataType {
	case TypeInt:
		switch n := raw.(type) {
		case int:
			return int64(n)
		case int32:
			return int64(n)
		case int64:
			return n
		}
	case TypeFloat:
		switch n := raw.(type) {
		case float32:
			return float64(n)
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	case TypeTimestamp:
		if t, ok := raw.(time.Time); ok {
			return t
		}
	}
	return raw
}

// Frame is a column-major table of rows and named, typed columns.
//
// Frames are read-only once constructed: derivations such as Select, Head
// and the statistics methods allocate new frames or slices and never touch
// the receiver. Frames carry no concurrency contract beyond that of any
// read-only value.
type Frame struct {
	cols []Column
}

// NewFrame creates a frame from columns. All columns must have the same
// length and distinct names.
func NewFrame(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, ErrEmptyData
	}

	seen := make(map[string]bool, len(cols))
	n := len(cols[0].Values)
	for _, c := range cols {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = true
		if len(c.Values) != n {
			return nil, fmt.Errorf("%w: column %s has %d values, expected %d",
				ErrLengthMismatch, c.Name, len(c.Values), n)
		}
	}

	return &Frame{cols: cols}, nil
}

// MustNewFrame is NewFrame for statically known-good inputs; it panics on error.
func MustNewFrame(cols ...Column) *Frame {
	f, err := NewFrame(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the number of rows in the frame.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Values)
}

// NumCols returns the number of columns in the frame.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns the frame's columns. The returned slice and its value
// slices must be treated as read-only.
func (f *Frame) Columns() []Column {
	return f.cols
}

// Column returns the named column.
// Returns ErrColumnNotFound if no column has that name.
func (f *Frame) Column(name string) (*Column, error) {
	for i := range f.cols {
		if f.cols[i].Name == name {
			return &f.cols[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// ColumnAt returns the column at the given index.
// Returns ErrInvalidColumn if the index is out of range.
func (f *Frame) ColumnAt(i int) (*Column, error) {
	if i < 0 || i >= len(f.cols) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumn, i)
	}
	return &f.cols[i], nil
}

// Row returns all values for the specified row.
// Returns ErrInvalidRow if the index is out of range.
func (f *Frame) Row(i int) ([]Value, error) {
	if i < 0 || i >= f.NumRows() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, i)
	}
	row := make([]Value, len(f.cols))
	for c := range f.cols {
		row[c] = f.cols[c].Values[i]
	}
	return row, nil
}

// Select returns a new frame narrowed to the named columns, in the given
// order. Returns ErrColumnNotFound if any name does not exist.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if len(names) == 0 {
		return f, nil
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, *c)
	}
	return &Frame{cols: cols}, nil
}

// Head returns a new frame with the first n rows (fewer if the frame is
// shorter).
func (f *Frame) Head(n int) *Frame {
	return f.slice(0, n)
}

// Tail returns a new frame with the last n rows (fewer if the frame is
// shorter).
func (f *Frame) Tail(n int) *Frame {
	total := f.NumRows()
	start := total - n
	if start < 0 {
		start = 0
	}
	return f.slice(start, total-start)
}

func (f *Frame) slice(start, n int) *Frame {
	total := f.NumRows()
	if start > total {
		start = total
	}
	end := start + n
	if n < 0 || end > total {
		end = total
	}

	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: c.Values[start:end]}
	}
	return &Frame{cols: cols}
}
