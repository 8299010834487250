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

// Package table provides the in-memory tabular data model consumed by the
// inspection accessor: typed columns of null-aware values, structural
// queries, descriptive statistics, rendering, and Arrow conversion.
package table

import (
	"fmt"
	"strconv"
	"time"
)

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeTimestamp represents timestamp data (date + time).
	TypeTimestamp
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeTimestamp:
		return "Timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// IsNumeric reports whether values of this type can feed numeric statistics.
func (dt DataType) IsNumeric() bool {
	return dt == TypeInt || dt == TypeFloat
}

// Value is a typed container for cell values.
// The concrete type of Raw depends on Type: string, int64, float64, bool,
// or time.Time. A null value has IsNull set and Raw nil.
type Value struct {
	Raw    interface{}
	Type   DataType
	IsNull bool
}

// NewValue creates a new Value from a raw value and type.
// A nil raw yields a null value of the given type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{Raw: raw, Type: dataType}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{Raw: nil, Type: dataType, IsNull: true}
}

// Format renders the value for display. Floats use the given precision,
// nulls render as the empty string.
func (v Value) Format(prec int) string {
	if v.IsNull {
		return ""
	}

	switch v.Type {
	case TypeString:
		return v.Raw.(string)

	case TypeInt:
		return strconv.FormatInt(v.Raw.(int64), 10)

	case TypeFloat:
		return strconv.FormatFloat(v.Raw.(float64), 'f', prec, 64)

	case TypeBool:
		return strconv.FormatBool(v.Raw.(bool))

	case TypeTimestamp:
		return v.Raw.(time.Time).Format("2006-01-02 15:04:05")

	default:
		return fmt.Sprintf("%v", v.Raw)
	}
}

// Key returns a lossless string form used for equality grouping
// (duplicate detection, unique values, value counts).
func (v Value) Key() string {
	if v.IsNull {
		return "\x00null"
	}

	switch v.Type {
	case TypeFloat:
		return strconv.FormatFloat(v.Raw.(float64), 'g', -1, 64)
	case TypeTimestamp:
		return v.Raw.(time.Time).Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v.Raw)
	}
}

// AsFloat returns the value as a float64 when it is numeric and non-null.
func (v Value) AsFloat() (float64, bool) {
	if v.IsNull {
		return 0, false
	}
	switch v.Type {
	case TypeInt:
		return float64(v.Raw.(int64)), true
	case TypeFloat:
		return v.Raw.(float64), true
	default:
		return 0, false
	}
}
