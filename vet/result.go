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

package vet

import (
	"fmt"
	"strconv"
	"strings"

	"tablevet/table"
)

// ResultKind tags the shape of a derived report value, so the display path
// is an explicit switch rather than runtime shape sniffing.
type ResultKind int

const (
	// KindScalar is a single reportable value, printed inline.
	KindScalar ResultKind = iota
	// KindList is a flat sequence of values, printed on one line.
	KindList
	// KindTable is a table-shaped value, pretty-printed.
	KindTable
)

// Result is the tagged value produced by a check function.
type Result struct {
	Kind   ResultKind
	Scalar interface{}
	List   []table.Value
	Table  *table.Frame
}

// ScalarResult wraps a single value.
func ScalarResult(v interface{}) Result {
	return Result{Kind: KindScalar, Scalar: v}
}

// ListResult wraps a flat sequence of values.
func ListResult(values []table.Value) Result {
	return Result{Kind: KindList, List: values}
}

// TableResult wraps a frame.
func TableResult(f *table.Frame) Result {
	return Result{Kind: KindTable, Table: f}
}

// formatScalar renders a scalar with the configured float precision.
func formatScalar(v interface{}, prec int) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', prec, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', prec, 64)
	case table.Value:
		return n.Format(prec)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatList renders a value sequence as "[a, b, c]".
func formatList(values []table.Value, prec int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v.IsNull {
			parts[i] = "null"
		} else {
			parts[i] = v.Format(prec)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
