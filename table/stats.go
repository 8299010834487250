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
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// NullCounts returns a two-column frame (column, nulls) with the number of
// null cells per column.
func (f *Frame) NullCounts() *Frame {
	names := make([]interface{}, len(f.cols))
	counts := make([]interface{}, len(f.cols))
	for i, c := range f.cols {
		n := int64(0)
		for _, v := range c.Values {
			if v.IsNull {
				n++
			}
		}
		names[i] = c.Name
		counts[i] = n
	}
	return &Frame{cols: []Column{
		NewColumn("column", TypeString, names...),
		NewColumn("nulls", TypeInt, counts...),
	}}
}

// RowsWithAnyNull returns the number of rows containing at least one null.
func (f *Frame) RowsWithAnyNull() int {
	count := 0
	for i := 0; i < f.NumRows(); i++ {
		for _, c := range f.cols {
			if c.Values[i].IsNull {
				count++
				break
			}
		}
	}
	return count
}

// rowKey builds a grouping key for row i over the given columns.
func rowKey(cols []Column, i int) string {
	parts := make([]string, len(cols))
	for c := range cols {
		parts[c] = cols[c].Values[i].Key()
	}
	return strings.Join(parts, "\x1f")
}

// DuplicateRows counts rows that repeat an earlier row, optionally keyed by
// a column subset. Matches the "all but first occurrence" convention.
func (f *Frame) DuplicateRows(subset ...string) (int, error) {
	keyed := f
	if len(subset) > 0 {
		var err error
		keyed, err = f.Select(subset...)
		if err != nil {
			return 0, err
		}
	}

	seen := make(map[string]bool, keyed.NumRows())
	dups := 0
	for i := 0; i < keyed.NumRows(); i++ {
		key := rowKey(keyed.cols, i)
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups, nil
}

// Unique returns the distinct non-duplicate values of a column in
// first-seen order. Nulls count as a single distinct value.
func (f *Frame) Unique(name string) ([]Value, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(c.Values))
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		key := v.Key()
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// NUnique returns the number of distinct values in a column.
func (f *Frame) NUnique(name string) (int, error) {
	values, err := f.Unique(name)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

// ValueCounts returns a two-column frame (value, count) of the occurrences
// of each distinct value in a column, most frequent first. Ties keep
// first-seen order.
func (f *Frame) ValueCounts(name string) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	type group struct {
		value Value
		count int64
		first int
	}
	index := make(map[string]*group)
	var groups []*group
	for i, v := range c.Values {
		key := v.Key()
		g, ok := index[key]
		if !ok {
			g = &group{value: v, first: i}
			index[key] = g
			groups = append(groups, g)
		}
		g.count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].first < groups[j].first
	})

	values := make([]Value, len(groups))
	counts := make([]interface{}, len(groups))
	for i, g := range groups {
		values[i] = g.value
		counts[i] = g.count
	}

	return &Frame{cols: []Column{
		{Name: name, Type: c.Type, Values: values},
		NewColumn("count", TypeInt, counts...),
	}}, nil
}

// describeStats are the row labels of Describe, in display order.
var describeStats = []string{
	"count", "mean", "std", "min", "25%", "50%", "75%", "max", "skew", "kurtosis",
}

// Describe computes summary statistics for the numeric columns of the frame
// (or the named subset of them). Nulls are excluded per column. Returns
// ErrEmptyData when no numeric column is in scope.
func (f *Frame) Describe(names ...string) (*Frame, error) {
	scope := f
	if len(names) > 0 {
		var err error
		scope, err = f.Select(names...)
		if err != nil {
			return nil, err
		}
	}

	var numeric []Column
	for _, c := range scope.cols {
		if c.Type.IsNumeric() {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns to describe", ErrEmptyData)
	}

	labels := make([]interface{}, len(describeStats))
	for i, s := range describeStats {
		labels[i] = s
	}
	cols := []Column{NewColumn("stat", TypeString, labels...)}

	for _, c := range numeric {
		xs := columnFloats(c)
		rows, err := describeColumn(xs)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", c.Name, err)
		}
		cols = append(cols, NewColumn(c.Name, TypeFloat, rows...))
	}

	return &Frame{cols: cols}, nil
}

func columnFloats(c Column) []float64 {
	xs := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if x, ok := v.AsFloat(); ok {
			xs = append(xs, x)
		}
	}
	return xs
}

func describeColumn(xs []float64) ([]interface{}, error) {
	rows := make([]interface{}, len(describeStats))
	rows[0] = float64(len(xs))
	if len(xs) == 0 {
		for i := 1; i < len(rows); i++ {
			rows[i] = nil
		}
		return rows, nil
	}

	mean, err := stats.Mean(xs)
	if err != nil {
		return nil, err
	}
	std, err := stats.StandardDeviationSample(xs)
	if err != nil {
		// A single observation has no sample deviation.
		std = 0
	}
	min, err := stats.Min(xs)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(xs)
	if err != nil {
		return nil, err
	}
	q25, _ := stats.Percentile(xs, 25)
	q50, _ := stats.Median(xs)
	q75, _ := stats.Percentile(xs, 75)

	rows[1] = mean
	rows[2] = std
	rows[3] = min
	rows[4] = q25
	rows[5] = q50
	rows[6] = q75
	rows[7] = max
	rows[8] = stat.Skew(xs, nil)
	rows[9] = stat.ExKurtosis(xs, nil)
	return rows, nil
}

// DTypes returns a two-column frame (column, dtype) describing the schema.
func (f *Frame) DTypes() *Frame {
	names := make([]interface{}, len(f.cols))
	types := make([]interface{}, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
		types[i] = c.Type.String()
	}
	return &Frame{cols: []Column{
		NewColumn("column", TypeString, names...),
		NewColumn("dtype", TypeString, types...),
	}}
}

// MemoryUsage returns a two-column frame (column, bytes) with the estimated
// in-memory size of each column's data.
func (f *Frame) MemoryUsage() *Frame {
	names := make([]interface{}, len(f.cols))
	sizes := make([]interface{}, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
		sizes[i] = columnBytes(c)
	}
	return &Frame{cols: []Column{
		NewColumn("column", TypeString, names...),
		NewColumn("bytes", TypeInt, sizes...),
	}}
}

func columnBytes(c Column) int64 {
	var total int64
	for _, v := range c.Values {
		if v.IsNull {
			continue
		}
		switch c.Type {
		case TypeString:
			total += int64(len(v.Raw.(string)))
		case TypeBool:
			total++
		case TypeTimestamp:
			total += 24
		default:
			total += 8
		}
	}
	return total
}

// Float64s extracts the non-null values of a numeric column as float64s.
// Returns ErrTypeMismatch for non-numeric columns.
func (f *Frame) Float64s(name string) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.Type.IsNumeric() {
		return nil, fmt.Errorf("%w: column %s is %s, not numeric", ErrTypeMismatch, name, c.Type)
	}
	return columnFloats(*c), nil
}

// NumericColumnNames returns the names of the numeric columns in order.
func (f *Frame) NumericColumnNames() []string {
	var names []string
	for _, c := range f.cols {
		if c.Type.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}
